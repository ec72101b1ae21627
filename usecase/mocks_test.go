package usecase

import (
	"storefront-go-server/domain/entity"

	"github.com/stretchr/testify/mock"
)

// ========== MockStoreRepository ==========

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) CreateWithHomePage(store *entity.Store, home *entity.StorePage) error {
	args := m.Called(store, home)
	return args.Error(0)
}

func (m *MockStoreRepository) GetByID(storeID string) (*entity.Store, error) {
	args := m.Called(storeID)
	// 处理 nil 情况
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) UpdateTier(storeID string, tier entity.SubscriptionTier) error {
	args := m.Called(storeID, tier)
	return args.Error(0)
}

// ========== MockPageRepository ==========

type MockPageRepository struct {
	mock.Mock
}

func (m *MockPageRepository) GetByID(pageID string) (*entity.StorePage, error) {
	args := m.Called(pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StorePage), args.Error(1)
}

func (m *MockPageRepository) ListByStore(storeID string) ([]entity.StorePage, error) {
	args := m.Called(storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StorePage), args.Error(1)
}

func (m *MockPageRepository) Create(page *entity.StorePage) error {
	args := m.Called(page)
	return args.Error(0)
}

func (m *MockPageRepository) Update(pageID string, patch map[string]interface{}) error {
	args := m.Called(pageID, patch)
	return args.Error(0)
}

func (m *MockPageRepository) UpdateOrders(storeID string, orders map[string]int) error {
	args := m.Called(storeID, orders)
	return args.Error(0)
}

func (m *MockPageRepository) Delete(pageID string) error {
	args := m.Called(pageID)
	return args.Error(0)
}

// ========== MockProductRepository ==========

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(productID string) (*entity.Product, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) ListByStore(storeID string) ([]entity.Product, error) {
	args := m.Called(storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *entity.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// ========== MockVersionRepository ==========

type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) GetByID(versionID string) (*entity.ProductVersion, error) {
	args := m.Called(versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductVersion), args.Error(1)
}

func (m *MockVersionRepository) ListByProduct(productID string) ([]entity.ProductVersion, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductVersion), args.Error(1)
}

func (m *MockVersionRepository) CreateAsCurrent(version *entity.ProductVersion) error {
	args := m.Called(version)
	return args.Error(0)
}

func (m *MockVersionRepository) PromoteExclusively(productID, versionID string) error {
	args := m.Called(productID, versionID)
	return args.Error(0)
}

func (m *MockVersionRepository) Delete(versionID string) error {
	args := m.Called(versionID)
	return args.Error(0)
}
