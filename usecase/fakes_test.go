package usecase

import (
	"sort"
	"sync"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"

	"gorm.io/datatypes"
)

// ========== 内存版仓库实现 ==========
// Mock 适合单点断言，但端到端场景和并发不变量测试需要有状态的仓库：
// 这里用 map + 互斥锁模拟数据库，事务方法在锁内整体执行，
// 对外语义与 GORM 实现一致（原子交换、条件删除、RowsAffected 检查）

// --- fakeStoreRepo ---

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]entity.Store
	pages  *fakePageRepo // CreateWithHomePage 要同时写页面表
}

func newFakeStoreRepo(pages *fakePageRepo) *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[string]entity.Store), pages: pages}
}

func (f *fakeStoreRepo) CreateWithHomePage(store *entity.Store, home *entity.StorePage) error {
	f.mu.Lock()
	f.stores[store.ID] = *store
	f.mu.Unlock()
	return f.pages.Create(home)
}

func (f *fakeStoreRepo) GetByID(storeID string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	store, ok := f.stores[storeID]
	if !ok {
		return nil, nil
	}
	return &store, nil
}

func (f *fakeStoreRepo) UpdateTier(storeID string, tier entity.SubscriptionTier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	store, ok := f.stores[storeID]
	if !ok {
		return domainErrors.ErrStoreNotFound
	}
	store.Tier = tier
	f.stores[storeID] = store
	return nil
}

// setTier 测试脚手架：直接改等级，绕过归属校验
func (f *fakeStoreRepo) setTier(storeID string, tier entity.SubscriptionTier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	store := f.stores[storeID]
	store.Tier = tier
	f.stores[storeID] = store
}

// --- fakePageRepo ---

type fakePageRepo struct {
	mu    sync.Mutex
	pages map[string]entity.StorePage
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{pages: make(map[string]entity.StorePage)}
}

func (f *fakePageRepo) GetByID(pageID string) (*entity.StorePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page, ok := f.pages[pageID]
	if !ok {
		return nil, nil
	}
	return &page, nil
}

func (f *fakePageRepo) ListByStore(storeID string) ([]entity.StorePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.StorePage
	for _, p := range f.pages {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakePageRepo) Create(page *entity.StorePage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// (store_id, type) 唯一索引
	for _, p := range f.pages {
		if p.StoreID == page.StoreID && p.Type == page.Type {
			return domainErrors.ErrDuplicatePageType
		}
	}
	f.pages[page.ID] = *page
	return nil
}

func (f *fakePageRepo) Update(pageID string, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	page, ok := f.pages[pageID]
	if !ok {
		return domainErrors.ErrPageNotFound
	}
	if title, ok := patch["title"].(string); ok {
		page.Title = title
	}
	if enabled, ok := patch["enabled"].(bool); ok {
		page.Enabled = enabled
	}
	if sections, ok := patch["sections"].(string); ok {
		page.Sections = datatypes.JSON(sections)
	}
	f.pages[pageID] = page
	return nil
}

func (f *fakePageRepo) UpdateOrders(storeID string, orders map[string]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// 事务语义：先整体校验，再整体写入
	for pageID := range orders {
		if _, ok := f.pages[pageID]; !ok {
			return domainErrors.ErrConflict
		}
	}
	for pageID, order := range orders {
		page := f.pages[pageID]
		page.Order = order
		f.pages[pageID] = page
	}
	return nil
}

func (f *fakePageRepo) Delete(pageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[pageID]; !ok {
		return domainErrors.ErrPageNotFound
	}
	delete(f.pages, pageID)
	return nil
}

// --- fakeVersionRepo ---

type fakeVersionRepo struct {
	mu       sync.Mutex
	versions map[string]entity.ProductVersion
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{versions: make(map[string]entity.ProductVersion)}
}

func (f *fakeVersionRepo) GetByID(versionID string) (*entity.ProductVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	version, ok := f.versions[versionID]
	if !ok {
		return nil, nil
	}
	return &version, nil
}

func (f *fakeVersionRepo) ListByProduct(productID string) ([]entity.ProductVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ProductVersion
	for _, v := range f.versions {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	// 最新在前（CreatedAt 倒序，ID 兜底）
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeVersionRepo) CreateAsCurrent(version *entity.ProductVersion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.versions {
		if v.ProductID == version.ProductID && v.VersionNumber == version.VersionNumber {
			return domainErrors.ErrDuplicateVersion
		}
	}
	// 降级 + 插入在同一把锁内完成，等价于数据库事务
	for id, v := range f.versions {
		if v.ProductID == version.ProductID && v.IsCurrent {
			v.IsCurrent = false
			f.versions[id] = v
		}
	}
	version.IsCurrent = true
	f.versions[version.ID] = *version
	return nil
}

func (f *fakeVersionRepo) PromoteExclusively(productID, versionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, ok := f.versions[versionID]
	if !ok || target.ProductID != productID {
		return domainErrors.ErrVersionNotFound
	}
	for id, v := range f.versions {
		if v.ProductID == productID && v.IsCurrent {
			v.IsCurrent = false
			f.versions[id] = v
		}
	}
	target.IsCurrent = true
	f.versions[versionID] = target
	return nil
}

func (f *fakeVersionRepo) Delete(versionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	version, ok := f.versions[versionID]
	if !ok {
		return domainErrors.ErrVersionNotFound
	}
	if version.IsCurrent {
		return domainErrors.ErrCurrentVersionProtected
	}
	delete(f.versions, versionID)
	return nil
}

// currentCount 测试脚手架：统计商品下 is_current = true 的版本数
func (f *fakeVersionRepo) currentCount(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, v := range f.versions {
		if v.ProductID == productID && v.IsCurrent {
			count++
		}
	}
	return count
}

// --- fakeProductRepo ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]entity.Product)}
}

func (f *fakeProductRepo) GetByID(productID string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (f *fakeProductRepo) ListByStore(storeID string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	return nil
}
