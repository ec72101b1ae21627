package repository

import "storefront-go-server/domain/entity"

// ProductRepository 商品数据仓库接口
type ProductRepository interface {
	// GetByID 根据商品 ID 获取商品，不存在时返回 (nil, nil)
	GetByID(productID string) (*entity.Product, error)

	// ListByStore 获取店铺的全部商品，按创建时间倒序
	ListByStore(storeID string) ([]entity.Product, error)

	// Create 创建新商品
	Create(product *entity.Product) error
}
