package repository

import "storefront-go-server/domain/entity"

// PageRepository 店铺页面数据仓库接口
type PageRepository interface {
	// GetByID 根据页面 ID 获取页面，不存在时返回 (nil, nil)
	GetByID(pageID string) (*entity.StorePage, error)

	// ListByStore 获取店铺的全部页面
	// 按 sort_order 升序返回（删除页面后允许留空洞，但相对顺序不变）
	ListByStore(storeID string) ([]entity.StorePage, error)

	// Create 创建新页面
	Create(page *entity.StorePage) error

	// Update 按字段 patch 更新页面（标题、启用开关、sections）
	// 页面不存在时返回 ErrPageNotFound
	Update(pageID string, patch map[string]interface{}) error

	// UpdateOrders 批量写入新的 sort_order
	// ⚠️ 必须在一个事务内提交：重排要么整体生效，要么整体不生效
	UpdateOrders(storeID string, orders map[string]int) error

	// Delete 删除页面（home 页的保护在 UseCase 层校验）
	Delete(pageID string) error
}
