package repository

import "storefront-go-server/domain/entity"

// StoreRepository 店铺数据仓库接口
type StoreRepository interface {
	// CreateWithHomePage 创建店铺并植入 home 页
	// ⚠️ 必须在一个事务内完成："有店铺必有 home 页"是硬性不变量，
	// 不允许出现只建了店铺没建 home 页的中间状态
	CreateWithHomePage(store *entity.Store, home *entity.StorePage) error

	// GetByID 根据店铺 ID 获取店铺，不存在时返回 (nil, nil)
	GetByID(storeID string) (*entity.Store, error)

	// UpdateTier 更新店铺订阅等级
	// 店铺不存在时返回 ErrStoreNotFound
	UpdateTier(storeID string, tier entity.SubscriptionTier) error
}
