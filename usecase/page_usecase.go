package usecase

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
	"storefront-go-server/domain/repository"
	"storefront-go-server/internal/keylock"
	"storefront-go-server/internal/reorder"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PageUseCase 店铺页面业务逻辑层
//
// 负责页面集合的全部不变量：
// - 每种类型最多一个页面，home 页有且只有一个且不可删除
// - 页面总数 ≤ entity.MaxPagesPerStore
// - roadmap / community 受订阅等级门槛限制
// - 重排后 sort_order 是 0..n-1 的连续排列（删除后的空洞等到下次重排压实）
//
// ⚠️ 所有校验都基于临界区内的新鲜读：同一店铺的变更用 locks 按 storeID 串行，
// 防止两个并发 AddPage 都通过"数量 < 5"的检查
type PageUseCase struct {
	pages  repository.PageRepository
	stores repository.StoreRepository
	locks  *keylock.KeyedMutex
}

// NewPageUseCase 构造函数，依赖注入
func NewPageUseCase(pages repository.PageRepository, stores repository.StoreRepository, locks *keylock.KeyedMutex) *PageUseCase {
	return &PageUseCase{pages: pages, stores: stores, locks: locks}
}

// GetPages 获取店铺页面列表（按 sort_order 升序）
// 只读查询，不进临界区
func (uc *PageUseCase) GetPages(storeID string) ([]entity.StorePage, error) {
	store, err := uc.stores.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domainErrors.ErrStoreNotFound
	}
	return uc.pages.ListByStore(storeID)
}

// AddPage 为店铺添加指定类型的页面
// 校验顺序：类型合法 → 店铺存在且归属调用者 → 等级门槛 → 数量上限 → 类型唯一
// 新页面排在末尾：sort_order = 当前最大值 + 1
func (uc *PageUseCase) AddPage(storeID, callerID string, pageType entity.PageType) (*entity.StorePage, error) {
	if !pageType.Valid() {
		return nil, fmt.Errorf("%w: unknown page type %q", domainErrors.ErrValidation, pageType)
	}

	unlock := uc.locks.Lock(storeKey(storeID))
	defer unlock()

	store, err := uc.ownedStore(storeID, callerID)
	if err != nil {
		return nil, err
	}

	if !store.Tier.AtLeast(pageType.RequiredTier()) {
		return nil, domainErrors.ErrTierRequired
	}

	// 临界区内的新鲜读，作为全部不变量检查的依据
	pages, err := uc.pages.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	// 上限检查在前：满员的店铺加任何页面都是上限错误
	if len(pages) >= entity.MaxPagesPerStore {
		return nil, domainErrors.ErrMaxPagesExceeded
	}

	maxOrder := -1
	for _, p := range pages {
		if p.Type == pageType {
			return nil, domainErrors.ErrDuplicatePageType
		}
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
	}

	page := &entity.StorePage{
		ID:      uuid.NewString(),
		StoreID: storeID,
		Type:    pageType,
		Title:   pageType.DefaultTitle(),
		Slug:    pageType.Slug(),
		Order:   maxOrder + 1,
		Enabled: true,
	}
	if err := uc.pages.Create(page); err != nil {
		return nil, err
	}
	return page, nil
}

// DeletePage 删除页面
// ⚠️ home 页不可删除；删除不重新编号，空洞留给下次重排压实
func (uc *PageUseCase) DeletePage(pageID, callerID string) error {
	page, err := uc.pages.GetByID(pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return domainErrors.ErrPageNotFound
	}

	unlock := uc.locks.Lock(storeKey(page.StoreID))
	defer unlock()

	if _, err := uc.ownedStore(page.StoreID, callerID); err != nil {
		return err
	}

	// 临界区内重读，防止基于过期快照做保护检查
	page, err = uc.pages.GetByID(pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return domainErrors.ErrPageNotFound
	}
	if page.Type == entity.PageTypeHome {
		return domainErrors.ErrProtectedPage
	}

	return uc.pages.Delete(pageID)
}

// RenamePage 重命名页面
// 纯字段更新，不涉及集合不变量，无需进临界区
func (uc *PageUseCase) RenamePage(pageID, callerID, newTitle string) (*entity.StorePage, error) {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domainErrors.ErrValidation)
	}

	page, err := uc.ownedPage(pageID, callerID)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{"title": newTitle, "updated_at": time.Now()}
	if err := uc.pages.Update(pageID, patch); err != nil {
		return nil, err
	}
	page.Title = newTitle
	return page, nil
}

// SetEnabled 切换页面启用状态
// 纯开关，不涉及集合不变量
func (uc *PageUseCase) SetEnabled(pageID, callerID string, enabled bool) (*entity.StorePage, error) {
	page, err := uc.ownedPage(pageID, callerID)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{"enabled": enabled, "updated_at": time.Now()}
	if err := uc.pages.Update(pageID, patch); err != nil {
		return nil, err
	}
	page.Enabled = enabled
	return page, nil
}

// UpdateSections 更新页面的 sections 文档
// sections 是展示层自有的 JSON，这里只存储不解析
// 两种形式二选一：sections 整体替换，或 RFC 6902 patch 增量修改
func (uc *PageUseCase) UpdateSections(pageID, callerID string, sections, patchDoc []byte) (*entity.StorePage, error) {
	page, err := uc.ownedPage(pageID, callerID)
	if err != nil {
		return nil, err
	}

	var next []byte
	switch {
	case patchDoc != nil:
		patch, err := jsonpatch.DecodePatch(patchDoc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid json patch: %v", domainErrors.ErrValidation, err)
		}
		current := []byte(page.Sections)
		if len(current) == 0 {
			current = []byte("[]") // sections 默认是空的描述符数组
		}
		next, err = patch.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("%w: patch does not apply: %v", domainErrors.ErrValidation, err)
		}
	case sections != nil:
		if !json.Valid(sections) {
			return nil, fmt.Errorf("%w: sections must be valid json", domainErrors.ErrValidation)
		}
		next = sections
	default:
		return nil, fmt.Errorf("%w: either sections or patch is required", domainErrors.ErrValidation)
	}

	update := map[string]interface{}{"sections": string(next), "updated_at": time.Now()}
	if err := uc.pages.Update(pageID, update); err != nil {
		return nil, err
	}
	page.Sections = datatypes.JSON(next)
	return page, nil
}

// ReorderPages 按完整排列重排店铺页面
// sequence 必须是店铺现有页面 ID 的一个排列；重排引擎算出变更集后单事务落库
func (uc *PageUseCase) ReorderPages(storeID, callerID string, sequence []string) ([]entity.StorePage, error) {
	unlock := uc.locks.Lock(storeKey(storeID))
	defer unlock()

	if _, err := uc.ownedStore(storeID, callerID); err != nil {
		return nil, err
	}

	pages, err := uc.pages.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	changes, err := reorder.ApplyPermutation(pages, sequence)
	if err != nil {
		return nil, err
	}
	return uc.commitReorder(storeID, pages, changes)
}

// MovePage 拖拽语义：把页面挪到指定下标
func (uc *PageUseCase) MovePage(storeID, callerID, pageID string, targetIndex int) ([]entity.StorePage, error) {
	unlock := uc.locks.Lock(storeKey(storeID))
	defer unlock()

	if _, err := uc.ownedStore(storeID, callerID); err != nil {
		return nil, err
	}

	pages, err := uc.pages.ListByStore(storeID)
	if err != nil {
		return nil, err
	}

	changes, err := reorder.MoveToIndex(pages, pageID, targetIndex)
	if err != nil {
		return nil, err
	}
	return uc.commitReorder(storeID, pages, changes)
}

// commitReorder 落库变更集并返回更新后的页面列表（内存中直接改，不再读库）
func (uc *PageUseCase) commitReorder(storeID string, pages []entity.StorePage, changes []reorder.Change) ([]entity.StorePage, error) {
	if len(changes) == 0 {
		return pages, nil // 目标顺序与当前一致，no-op
	}

	orders := make(map[string]int, len(changes))
	for _, c := range changes {
		orders[c.PageID] = c.Order
	}
	if err := uc.pages.UpdateOrders(storeID, orders); err != nil {
		return nil, err
	}

	for i := range pages {
		if order, ok := orders[pages[i].ID]; ok {
			pages[i].Order = order
		}
	}
	sortPagesByOrder(pages)
	return pages, nil
}

// ownedStore 获取店铺并校验归属
func (uc *PageUseCase) ownedStore(storeID, callerID string) (*entity.Store, error) {
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
	return store, nil
}

// ownedPage 获取页面并校验其店铺归属调用者
func (uc *PageUseCase) ownedPage(pageID, callerID string) (*entity.StorePage, error) {
	page, err := uc.pages.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domainErrors.ErrPageNotFound
	}
	if _, err := uc.ownedStore(page.StoreID, callerID); err != nil {
		return nil, err
	}
	return page, nil
}

// storeKey 页面集合的串行化锁 key
// 加前缀与其它实体的 key 空间隔离
func storeKey(storeID string) string {
	return "store:" + storeID
}

// sortPagesByOrder 按 sort_order 升序
func sortPagesByOrder(pages []entity.StorePage) {
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})
}
