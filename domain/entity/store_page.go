package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ========== 页面类型（封闭枚举）==========
// 页面类型决定标题默认值、URL slug 和订阅门槛
// ⚠️ 不要用裸字符串构造 PageType，必须用下面的常量

// PageType 店铺页面类型
type PageType string

const (
	PageTypeHome      PageType = "home"
	PageTypeAbout     PageType = "about"
	PageTypeTerms     PageType = "terms-of-service"
	PageTypeRoadmap   PageType = "roadmap"
	PageTypeCommunity PageType = "community"
)

// MaxPagesPerStore 每个店铺的页面数量上限
const MaxPagesPerStore = 5

// Valid 检查是否为合法页面类型
func (t PageType) Valid() bool {
	switch t {
	case PageTypeHome, PageTypeAbout, PageTypeTerms, PageTypeRoadmap, PageTypeCommunity:
		return true
	}
	return false
}

// DefaultTitle 页面类型对应的默认显示标题
func (t PageType) DefaultTitle() string {
	switch t {
	case PageTypeHome:
		return "Home"
	case PageTypeAbout:
		return "About"
	case PageTypeTerms:
		return "Terms of Service"
	case PageTypeRoadmap:
		return "Roadmap"
	case PageTypeCommunity:
		return "Community"
	}
	return string(t)
}

// Slug 页面类型对应的 URL 路径段
// ⚠️ home 页是店铺根路径，slug 为空字符串
func (t PageType) Slug() string {
	if t == PageTypeHome {
		return ""
	}
	return string(t)
}

// RequiredTier 创建该类型页面需要的最低订阅等级
// roadmap 和 community 是 Pro 功能，其余类型不设门槛
func (t PageType) RequiredTier() SubscriptionTier {
	switch t {
	case PageTypeRoadmap, PageTypeCommunity:
		return TierPro
	}
	return TierFree
}

// StorePage 店铺页面数据库模型
// Sections 是展示层自有的 JSONB 文档，后端只存储不解析
// (storeID, type) 组合唯一索引兜底"每种类型最多一个页面"的业务校验
type StorePage struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	StoreID   string         `gorm:"size:64;index;uniqueIndex:uniq_store_page_type" json:"storeId"`
	Type      PageType       `gorm:"size:32;uniqueIndex:uniq_store_page_type" json:"type"`
	Title     string         `gorm:"size:100" json:"title"`
	Slug      string         `gorm:"size:64" json:"slug"`
	Order     int            `gorm:"column:sort_order" json:"order"` // order 是 SQL 保留字
	Sections  datatypes.JSON `gorm:"type:jsonb" json:"sections"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
