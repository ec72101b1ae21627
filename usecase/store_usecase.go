package usecase

import (
	"fmt"
	"strings"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	"storefront-go-server/domain/repository"

	"github.com/google/uuid"
)

// StoreUseCase 店铺业务逻辑层
type StoreUseCase struct {
	stores repository.StoreRepository
}

// NewStoreUseCase 构造函数，依赖注入
func NewStoreUseCase(stores repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{stores: stores}
}

// CreateStore 创建店铺并植入 home 页
// 新店铺默认 free 等级；home 页是不可删除的锚点，随店铺一起出生
func (uc *StoreUseCase) CreateStore(callerID, name string) (*entity.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: store name must not be empty", domainErrors.ErrValidation)
	}

	store := &entity.Store{
		ID:      uuid.NewString(),
		OwnerID: callerID,
		Name:    name,
		Tier:    entity.TierFree,
	}
	home := &entity.StorePage{
		ID:      uuid.NewString(),
		StoreID: store.ID,
		Type:    entity.PageTypeHome,
		Title:   entity.PageTypeHome.DefaultTitle(),
		Slug:    entity.PageTypeHome.Slug(),
		Order:   0,
		Enabled: true,
	}

	if err := uc.stores.CreateWithHomePage(store, home); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore 获取店铺
func (uc *StoreUseCase) GetStore(storeID string) (*entity.Store, error) {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domainErrors.ErrStoreNotFound
	}
	return store, nil
}

// UpdateTier 更新店铺订阅等级（结算回调或管理操作触发）
// 只校验等级合法和归属；降级不回收已存在的受限页面
func (uc *StoreUseCase) UpdateTier(storeID, callerID string, tier entity.SubscriptionTier) (*entity.Store, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown tier %q", domainErrors.ErrValidation, tier)
	}

	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domainErrors.ErrStoreNotFound
	}
	if store.OwnerID != callerID {
		return nil, domainErrors.ErrUnauthorized
	}

	if err := uc.stores.UpdateTier(storeID, tier); err != nil {
		return nil, err
	}
	store.Tier = tier
	return store, nil
}
