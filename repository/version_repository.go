package repository

import (
	"errors"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	domainRepo "storefront-go-server/domain/repository"

	"gorm.io/gorm"
)

// versionRepository GORM 实现 VersionRepository 接口
//
// "有且只有一个当前版本"的原子交换在这里落地：
// 降级 + 升级永远在同一个事务内提交，数据库里看不到中间状态
type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository 构造函数
func NewVersionRepository(db *gorm.DB) domainRepo.VersionRepository {
	return &versionRepository{db: db}
}

// GetByID 根据版本 ID 查询版本
func (r *versionRepository) GetByID(versionID string) (*entity.ProductVersion, error) {
	var version entity.ProductVersion
	err := r.db.Where("id = ?", versionID).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDB(err)
	}
	return &version, nil
}

// ListByProduct 查询商品全部版本，最新在前
// created_at 相同时按 ID 兜底，保证"最近创建的版本"判定稳定
func (r *versionRepository) ListByProduct(productID string) ([]entity.ProductVersion, error) {
	var versions []entity.ProductVersion
	err := r.db.Where("product_id = ?", productID).
		Order("created_at desc, id desc").
		Find(&versions).Error
	return versions, wrapDB(err)
}

// CreateAsCurrent 单事务：降级商品下所有旧版本 → 插入新的当前版本
// ⚠️ 不要拆成两次独立写入：并发写入者插进中间会留下零个或多个当前版本
func (r *versionRepository) CreateAsCurrent(version *entity.ProductVersion) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.ProductVersion{}).
			Where("product_id = ? AND is_current = ?", version.ProductID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		version.IsCurrent = true
		return tx.Create(version).Error
	})
	// (product_id, version_number) 唯一索引兜底并发重复插入
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErrors.ErrDuplicateVersion
	}
	return wrapDB(err)
}

// PromoteExclusively 单事务：降级商品下所有版本 → 独占升级指定版本
// 升级语句带 product_id 条件，versionID 不属于该商品时命中 0 行并回滚
func (r *versionRepository) PromoteExclusively(productID, versionID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.ProductVersion{}).
			Where("product_id = ? AND is_current = ?", productID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.ProductVersion{}).
			Where("id = ? AND product_id = ?", versionID, productID).
			Update("is_current", true)
		if result.Error != nil {
			return result.Error
		}
		// ⚠️ 关键：升级没命中任何行说明版本不存在（或已被并发删除），
		// 必须回滚降级操作，否则商品会落在"零个当前版本"的状态
		if result.RowsAffected == 0 {
			return domainErrors.ErrVersionNotFound
		}
		return nil
	})
	if err == nil || errors.Is(err, domainErrors.ErrVersionNotFound) {
		return err
	}
	return wrapDB(err)
}

// Delete 条件删除：只删非当前版本
// 与 PromoteExclusively 并发竞争时，宁可返回冲突也不能删掉当前版本
func (r *versionRepository) Delete(versionID string) error {
	result := r.db.Where("id = ? AND is_current = ?", versionID, false).
		Delete(&entity.ProductVersion{})
	if result.Error != nil {
		return wrapDB(result.Error)
	}
	if result.RowsAffected == 0 {
		// 没删到行：要么版本不存在，要么它刚好是当前版本
		version, err := r.GetByID(versionID)
		if err != nil {
			return err
		}
		if version == nil {
			return domainErrors.ErrVersionNotFound
		}
		return domainErrors.ErrCurrentVersionProtected
	}
	return nil
}
