package repository

import (
	"errors"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	domainRepo "storefront-go-server/domain/repository"

	"gorm.io/gorm"
)

// storeRepository GORM 实现 StoreRepository 接口
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 构造函数
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

// CreateWithHomePage 单事务创建店铺 + home 页
// "有店铺必有 home 页"是硬性不变量，不允许中间状态落库
func (r *storeRepository) CreateWithHomePage(store *entity.Store, home *entity.StorePage) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		return tx.Create(home).Error
	})
	return wrapDB(err)
}

// GetByID 根据店铺 ID 查询店铺
func (r *storeRepository) GetByID(storeID string) (*entity.Store, error) {
	var store entity.Store
	err := r.db.Where("id = ?", storeID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDB(err)
	}
	return &store, nil
}

// UpdateTier 更新订阅等级
func (r *storeRepository) UpdateTier(storeID string, tier entity.SubscriptionTier) error {
	result := r.db.Model(&entity.Store{}).
		Where("id = ?", storeID).
		Update("tier", tier)
	if result.Error != nil {
		return wrapDB(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrStoreNotFound
	}
	return nil
}
