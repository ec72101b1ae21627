package repository

import (
	"errors"

	"storefront-go-server/domain/entity"
	domainRepo "storefront-go-server/domain/repository"

	"gorm.io/gorm"
)

// productRepository GORM 实现 ProductRepository 接口
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 构造函数
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

// GetByID 根据商品 ID 查询商品
func (r *productRepository) GetByID(productID string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Where("id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDB(err)
	}
	return &product, nil
}

// ListByStore 查询店铺全部商品，按创建时间倒序
func (r *productRepository) ListByStore(storeID string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&products).Error
	return products, wrapDB(err)
}

// Create 创建新商品
func (r *productRepository) Create(product *entity.Product) error {
	return wrapDB(r.db.Create(product).Error)
}
