package repository

import (
	"errors"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	domainRepo "storefront-go-server/domain/repository"

	"gorm.io/gorm"
)

// pageRepository GORM 实现 PageRepository 接口
type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository 构造函数
func NewPageRepository(db *gorm.DB) domainRepo.PageRepository {
	return &pageRepository{db: db}
}

// GetByID 根据页面 ID 查询页面
func (r *pageRepository) GetByID(pageID string) (*entity.StorePage, error) {
	var page entity.StorePage
	err := r.db.Where("id = ?", pageID).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // 返回 nil 表示不存在，调用方需处理
	}
	if err != nil {
		return nil, wrapDB(err)
	}
	return &page, nil
}

// ListByStore 查询店铺全部页面，按 sort_order 升序
// sort_order 相同时按创建时间兜底，保证排序稳定
func (r *pageRepository) ListByStore(storeID string) ([]entity.StorePage, error) {
	var pages []entity.StorePage
	err := r.db.Where("store_id = ?", storeID).
		Order("sort_order asc, created_at asc").
		Find(&pages).Error
	return pages, wrapDB(err)
}

// Create 创建新页面
// (store_id, type) 唯一索引兜底：UseCase 校验后仍撞库说明并发插入，
// 映射为 ErrDuplicatePageType 让调用方按业务错误处理
func (r *pageRepository) Create(page *entity.StorePage) error {
	err := r.db.Create(page).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErrors.ErrDuplicatePageType
	}
	return wrapDB(err)
}

// Update 按字段 patch 更新页面
// ⚠️ 检查 RowsAffected：没命中任何行说明页面已被并发删除
func (r *pageRepository) Update(pageID string, patch map[string]interface{}) error {
	result := r.db.Model(&entity.StorePage{}).
		Where("id = ?", pageID).
		Updates(patch)
	if result.Error != nil {
		return wrapDB(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrPageNotFound
	}
	return nil
}

// UpdateOrders 在单个事务内批量写入新的 sort_order
// 重排是"一个逻辑单元"：任意一条更新失败则整体回滚
func (r *pageRepository) UpdateOrders(storeID string, orders map[string]int) error {
	if len(orders) == 0 {
		return nil // 没有变化，无需开事务
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for pageID, order := range orders {
			result := tx.Model(&entity.StorePage{}).
				Where("id = ? AND store_id = ?", pageID, storeID).
				Update("sort_order", order)
			if result.Error != nil {
				return result.Error
			}
			// 页面在重排期间被并发删除，整个重排作废
			if result.RowsAffected == 0 {
				return domainErrors.ErrConflict
			}
		}
		return nil
	})
	if err == nil || errors.Is(err, domainErrors.ErrConflict) {
		return err
	}
	return wrapDB(err)
}

// Delete 删除页面
func (r *pageRepository) Delete(pageID string) error {
	result := r.db.Where("id = ?", pageID).Delete(&entity.StorePage{})
	if result.Error != nil {
		return wrapDB(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrPageNotFound
	}
	return nil
}
