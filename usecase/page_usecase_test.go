package usecase

import (
	"sync"
	"testing"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	"storefront-go-server/internal/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ========== PageUseCase 单元测试 ==========
// 测试核心业务逻辑：类型唯一、数量上限、等级门槛、home 页保护、重排

const (
	testOwner    = "user-123"
	testStranger = "user-666"
)

func freeStore(id string) *entity.Store {
	return &entity.Store{ID: id, OwnerID: testOwner, Name: "My Store", Tier: entity.TierFree}
}

func proStore(id string) *entity.Store {
	store := freeStore(id)
	store.Tier = entity.TierPro
	return store
}

// newPageUseCase 用 Mock 仓库构造被测对象
func newPageUseCase(pages *MockPageRepository, stores *MockStoreRepository) *PageUseCase {
	return NewPageUseCase(pages, stores, keylock.New())
}

func TestAddPage_Success(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)
	// 店铺已有 home(0)，新页面应排在末尾
	mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
		{ID: "p-home", StoreID: "store-1", Type: entity.PageTypeHome, Order: 0},
	}, nil)
	mockPages.On("Create", mock.MatchedBy(func(page *entity.StorePage) bool {
		return page.StoreID == "store-1" &&
			page.Type == entity.PageTypeAbout &&
			page.Title == "About" &&
			page.Slug == "about" &&
			page.Order == 1 &&
			page.Enabled
	})).Return(nil).Once()

	uc := newPageUseCase(mockPages, mockStores)

	page, err := uc.AddPage("store-1", testOwner, entity.PageTypeAbout)

	assert.NoError(t, err)
	assert.NotNil(t, page)
	assert.NotEmpty(t, page.ID)
	mockPages.AssertExpectations(t)
}

func TestAddPage_DuplicateType(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)
	mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
		{ID: "p-home", Type: entity.PageTypeHome, Order: 0},
		{ID: "p-about", Type: entity.PageTypeAbout, Order: 1},
	}, nil)

	uc := newPageUseCase(mockPages, mockStores)

	page, err := uc.AddPage("store-1", testOwner, entity.PageTypeAbout)

	assert.Nil(t, page)
	assert.ErrorIs(t, err, domainErrors.ErrDuplicatePageType)
	mockPages.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddPage_TierGate(t *testing.T) {
	// roadmap / community 需要 pro 及以上，free 店铺被拒
	testCases := []struct {
		name     string
		tier     entity.SubscriptionTier
		pageType entity.PageType
		wantErr  error
	}{
		{"free 加 roadmap 被拒", entity.TierFree, entity.PageTypeRoadmap, domainErrors.ErrTierRequired},
		{"free 加 community 被拒", entity.TierFree, entity.PageTypeCommunity, domainErrors.ErrTierRequired},
		{"pro 加 roadmap 放行", entity.TierPro, entity.PageTypeRoadmap, nil},
		{"pro_plus 加 community 放行", entity.TierProPlus, entity.PageTypeCommunity, nil},
		{"enterprise 加 roadmap 放行", entity.TierEnterprise, entity.PageTypeRoadmap, nil},
		{"free 加 about 不受门槛限制", entity.TierFree, entity.PageTypeAbout, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockPages := new(MockPageRepository)
			mockStores := new(MockStoreRepository)

			store := freeStore("store-1")
			store.Tier = tc.tier
			mockStores.On("GetByID", "store-1").Return(store, nil)
			mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
				{ID: "p-home", Type: entity.PageTypeHome, Order: 0},
			}, nil).Maybe()
			mockPages.On("Create", mock.Anything).Return(nil).Maybe()

			uc := newPageUseCase(mockPages, mockStores)
			_, err := uc.AddPage("store-1", testOwner, tc.pageType)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				mockPages.AssertNotCalled(t, "Create", mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddPage_InvalidType(t *testing.T) {
	uc := newPageUseCase(new(MockPageRepository), new(MockStoreRepository))

	page, err := uc.AddPage("store-1", testOwner, entity.PageType("blog"))

	assert.Nil(t, page)
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestAddPage_NotOwner(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)
	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)

	uc := newPageUseCase(mockPages, mockStores)

	page, err := uc.AddPage("store-1", testStranger, entity.PageTypeAbout)

	assert.Nil(t, page)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestDeletePage_HomeProtected(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	home := &entity.StorePage{ID: "p-home", StoreID: "store-1", Type: entity.PageTypeHome}
	mockPages.On("GetByID", "p-home").Return(home, nil)
	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)

	uc := newPageUseCase(mockPages, mockStores)

	err := uc.DeletePage("p-home", testOwner)

	assert.ErrorIs(t, err, domainErrors.ErrProtectedPage)
	mockPages.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeletePage_Success_NoRenumbering(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	about := &entity.StorePage{ID: "p-about", StoreID: "store-1", Type: entity.PageTypeAbout, Order: 1}
	mockPages.On("GetByID", "p-about").Return(about, nil)
	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)
	mockPages.On("Delete", "p-about").Return(nil).Once()

	uc := newPageUseCase(mockPages, mockStores)

	err := uc.DeletePage("p-about", testOwner)

	assert.NoError(t, err)
	// 删除不重新编号：不允许触发 UpdateOrders
	mockPages.AssertNotCalled(t, "UpdateOrders", mock.Anything, mock.Anything)
}

func TestRenamePage_EmptyTitle(t *testing.T) {
	uc := newPageUseCase(new(MockPageRepository), new(MockStoreRepository))

	// 纯空白标题 trim 后为空，直接拒绝，不触发任何仓库调用
	page, err := uc.RenamePage("p-1", testOwner, "   ")

	assert.Nil(t, page)
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestReorderPages_NotAPermutation(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)
	mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
		{ID: "p-home", Order: 0},
		{ID: "p-about", Order: 1},
	}, nil)

	uc := newPageUseCase(mockPages, mockStores)

	// 缺了 p-about，不是现有页面 ID 的排列
	pages, err := uc.ReorderPages("store-1", testOwner, []string{"p-home"})

	assert.Nil(t, pages)
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	mockPages.AssertNotCalled(t, "UpdateOrders", mock.Anything, mock.Anything)
}

func TestReorderPages_NoOpSkipsWrite(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	mockStores.On("GetByID", "store-1").Return(freeStore("store-1"), nil)
	mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
		{ID: "p-home", Order: 0},
		{ID: "p-about", Order: 1},
	}, nil)

	uc := newPageUseCase(mockPages, mockStores)

	// 目标顺序与当前一致：直接返回，不写库
	pages, err := uc.ReorderPages("store-1", testOwner, []string{"p-home", "p-about"})

	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	mockPages.AssertNotCalled(t, "UpdateOrders", mock.Anything, mock.Anything)
}

// ========== 端到端场景（内存仓库）==========

// TestPageLifecycle_EndToEnd 完整走一遍店铺页面生命周期：
// 建店（home 自动植入）→ 加 about → free 加 roadmap 被拒 → 加 tos →
// 升级 pro 后加 community、roadmap → 第 6 个页面撞上限
func TestPageLifecycle_EndToEnd(t *testing.T) {
	pageRepo := newFakePageRepo()
	storeRepo := newFakeStoreRepo(pageRepo)
	locks := keylock.New()

	storeUC := NewStoreUseCase(storeRepo)
	pageUC := NewPageUseCase(pageRepo, storeRepo, locks)

	// 建店：home 页随店铺出生
	store, err := storeUC.CreateStore(testOwner, "My Store")
	assert.NoError(t, err)

	pages, err := pageUC.GetPages(store.ID)
	assert.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Equal(t, entity.PageTypeHome, pages[0].Type)
	assert.Equal(t, 0, pages[0].Order)

	// 加 about → [home(0), about(1)]
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeAbout)
	assert.NoError(t, err)

	// free 等级加 roadmap 被拒
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeRoadmap)
	assert.ErrorIs(t, err, domainErrors.ErrTierRequired)

	// 加 tos → [home(0), about(1), tos(2)]
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeTerms)
	assert.NoError(t, err)

	pages, _ = pageUC.GetPages(store.ID)
	assert.Len(t, pages, 3)
	for i, p := range pages {
		assert.Equal(t, i, p.Order)
	}

	// 升级 pro 后 community、roadmap 放行，页面数到达上限 5
	storeRepo.setTier(store.ID, entity.TierPro)
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeCommunity)
	assert.NoError(t, err)
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeRoadmap)
	assert.NoError(t, err)

	pages, _ = pageUC.GetPages(store.ID)
	assert.Len(t, pages, entity.MaxPagesPerStore)

	// 第 6 次 AddPage 撞数量上限（满员店铺的上限检查先于类型唯一性）
	_, err = pageUC.AddPage(store.ID, testOwner, entity.PageTypeAbout)
	assert.ErrorIs(t, err, domainErrors.ErrMaxPagesExceeded)
	pages, _ = pageUC.GetPages(store.ID)
	assert.Len(t, pages, entity.MaxPagesPerStore)
}

// TestAddPage_MaxPagesExceeded 数量上限：满员店铺加任何页面都被拒
func TestAddPage_MaxPagesExceeded(t *testing.T) {
	mockPages := new(MockPageRepository)
	mockStores := new(MockStoreRepository)

	mockStores.On("GetByID", "store-1").Return(proStore("store-1"), nil)
	// 已有 5 个页面（满员）
	mockPages.On("ListByStore", "store-1").Return([]entity.StorePage{
		{ID: "p1", Type: entity.PageTypeHome, Order: 0},
		{ID: "p2", Type: entity.PageTypeAbout, Order: 1},
		{ID: "p3", Type: entity.PageTypeTerms, Order: 2},
		{ID: "p4", Type: entity.PageTypeRoadmap, Order: 3},
		{ID: "p5", Type: entity.PageTypeCommunity, Order: 4},
	}, nil)

	uc := newPageUseCase(mockPages, mockStores)

	page, err := uc.AddPage("store-1", testOwner, entity.PageTypeCommunity)

	assert.Nil(t, page)
	assert.ErrorIs(t, err, domainErrors.ErrMaxPagesExceeded)
	mockPages.AssertNotCalled(t, "Create", mock.Anything)
}

// TestReorderPages_IdempotentEndToEnd 同一排列连续应用两次，结果一致
func TestReorderPages_IdempotentEndToEnd(t *testing.T) {
	pageRepo := newFakePageRepo()
	storeRepo := newFakeStoreRepo(pageRepo)
	locks := keylock.New()

	storeUC := NewStoreUseCase(storeRepo)
	pageUC := NewPageUseCase(pageRepo, storeRepo, locks)

	store, _ := storeUC.CreateStore(testOwner, "My Store")
	about, _ := pageUC.AddPage(store.ID, testOwner, entity.PageTypeAbout)
	tos, _ := pageUC.AddPage(store.ID, testOwner, entity.PageTypeTerms)

	pages, _ := pageUC.GetPages(store.ID)
	home := pages[0]

	target := []string{tos.ID, home.ID, about.ID}

	first, err := pageUC.ReorderPages(store.ID, testOwner, target)
	assert.NoError(t, err)
	second, err := pageUC.ReorderPages(store.ID, testOwner, target)
	assert.NoError(t, err)

	assert.Equal(t, pageIDs(first), pageIDs(second))
	for i, p := range second {
		assert.Equal(t, i, p.Order) // 0..n-1 连续
	}
}

// TestReorderPages_CompactsDeleteGap 删除留下的空洞在下次重排时压实
func TestReorderPages_CompactsDeleteGap(t *testing.T) {
	pageRepo := newFakePageRepo()
	storeRepo := newFakeStoreRepo(pageRepo)
	locks := keylock.New()

	storeUC := NewStoreUseCase(storeRepo)
	pageUC := NewPageUseCase(pageRepo, storeRepo, locks)

	store, _ := storeUC.CreateStore(testOwner, "My Store")
	about, _ := pageUC.AddPage(store.ID, testOwner, entity.PageTypeAbout)
	tos, _ := pageUC.AddPage(store.ID, testOwner, entity.PageTypeTerms)

	// 删掉中间的 about：orders 变成 [0, 2]，留空洞
	assert.NoError(t, pageUC.DeletePage(about.ID, testOwner))
	pages, _ := pageUC.GetPages(store.ID)
	assert.Equal(t, 2, pages[1].Order)

	// 重排（保持现有顺序）后压实为 [0, 1]
	home := pages[0]
	reordered, err := pageUC.ReorderPages(store.ID, testOwner, []string{home.ID, tos.ID})
	assert.NoError(t, err)
	assert.Equal(t, 0, reordered[0].Order)
	assert.Equal(t, 1, reordered[1].Order)
}

// TestAddPage_ConcurrentRespectsCap 并发 AddPage 不突破数量上限
// keyed lock 把同店铺的变更串行化，所有校验基于临界区内的新鲜读
func TestAddPage_ConcurrentRespectsCap(t *testing.T) {
	pageRepo := newFakePageRepo()
	storeRepo := newFakeStoreRepo(pageRepo)
	locks := keylock.New()

	storeUC := NewStoreUseCase(storeRepo)
	pageUC := NewPageUseCase(pageRepo, storeRepo, locks)

	store, _ := storeUC.CreateStore(testOwner, "My Store")
	storeRepo.setTier(store.ID, entity.TierEnterprise)

	types := []entity.PageType{
		entity.PageTypeAbout, entity.PageTypeTerms,
		entity.PageTypeRoadmap, entity.PageTypeCommunity,
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// 每种类型被请求多次，成功至多一次
			_, _ = pageUC.AddPage(store.ID, testOwner, types[n%len(types)])
		}(i)
	}
	wg.Wait()

	pages, err := pageUC.GetPages(store.ID)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(pages), entity.MaxPagesPerStore)

	// 类型唯一性在并发下也成立
	seen := map[entity.PageType]bool{}
	for _, p := range pages {
		assert.False(t, seen[p.Type], "类型 %s 出现了两次", p.Type)
		seen[p.Type] = true
	}
}

func pageIDs(pages []entity.StorePage) []string {
	ids := make([]string, len(pages))
	for i, p := range pages {
		ids[i] = p.ID
	}
	return ids
}
