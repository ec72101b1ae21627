package usecase

import (
	"fmt"
	"strings"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	"storefront-go-server/domain/repository"

	"github.com/google/uuid"
)

// ProductUseCase 商品业务逻辑层
// 商品本身没有集合不变量，版本账本的规则见 VersionUseCase
type ProductUseCase struct {
	products repository.ProductRepository
	stores   repository.StoreRepository
}

// NewProductUseCase 构造函数，依赖注入
func NewProductUseCase(products repository.ProductRepository, stores repository.StoreRepository) *ProductUseCase {
	return &ProductUseCase{products: products, stores: stores}
}

// CreateProduct 在店铺下创建商品
func (uc *ProductUseCase) CreateProduct(storeID, callerID, name, description string, priceCents int64) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name must not be empty", domainErrors.ErrValidation)
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domainErrors.ErrValidation)
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

	product := &entity.Product{
		ID:          uuid.NewString(),
		StoreID:     storeID,
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts 获取店铺商品列表
func (uc *ProductUseCase) ListProducts(storeID string) ([]entity.Product, error) {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domainErrors.ErrStoreNotFound
	}
	return uc.products.ListByStore(storeID)
}
