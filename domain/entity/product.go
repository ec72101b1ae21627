package entity

import "time"

// Product 商品数据库模型
// 商品挂在店铺下，版本历史挂在商品下（见 ProductVersion）
type Product struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	StoreID     string    `gorm:"size:64;index" json:"storeId"`
	Name        string    `gorm:"size:200" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"default:0" json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductVersion 商品版本数据库模型
// 同一商品下版本号唯一（组合唯一索引兜底业务校验）
// ⚠️ 不变量：非空版本集合中有且只有一个 IsCurrent = true
// 当前版本是买家实际下载到的版本，禁止删除
type ProductVersion struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID     string    `gorm:"size:64;index;uniqueIndex:uniq_product_version" json:"productId"`
	VersionNumber string    `gorm:"size:64;uniqueIndex:uniq_product_version" json:"versionNumber"`
	FileReference string    `gorm:"size:512" json:"fileReference"` // 上传物料的外部指针
	Changelog     string    `gorm:"type:text" json:"changelog"`
	IsCurrent     bool      `gorm:"default:false;index" json:"isCurrent"`
	CreatedAt     time.Time `json:"createdAt"`
}
