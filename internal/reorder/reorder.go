package reorder

import (
	"fmt"

	"storefront-go-server/domain/entity"
	domainErrors "storefront-go-server/domain/errors"
)

// ========== 重排引擎（纯函数，无副作用）==========
// 输入当前页面列表 + 目标顺序，输出需要落库的 sort_order 变更集
// 不碰数据库；事务提交交给 PageRepository.UpdateOrders
//
// 两种目标顺序表达方式：
// - ApplyPermutation: 前端传完整的页面 ID 排列
// - MoveToIndex:      拖拽语义，"把某个页面挪到第 N 位"
//
// 幂等性：新 sort_order 就是页面在目标序列里的下标，
// 同一个排列应用两次，第二次的变更集为空

// Change 单个页面的 sort_order 变更
type Change struct {
	PageID string
	Order  int
}

// ApplyPermutation 按完整排列重算 sort_order
// sequence 必须恰好是 pages 中全部页面 ID 的一个排列，否则返回 ErrValidation
// 返回值只包含 sort_order 发生变化的页面（删除留下的空洞在此一并压实）
func ApplyPermutation(pages []entity.StorePage, sequence []string) ([]Change, error) {
	if len(sequence) != len(pages) {
		return nil, fmt.Errorf("%w: sequence has %d ids, store has %d pages",
			domainErrors.ErrValidation, len(sequence), len(pages))
	}

	current := make(map[string]int, len(pages)) // pageID -> 当前 sort_order
	for _, p := range pages {
		current[p.ID] = p.Order
	}

	changes := make([]Change, 0, len(sequence))
	seen := make(map[string]bool, len(sequence))
	for index, pageID := range sequence {
		if seen[pageID] {
			return nil, fmt.Errorf("%w: duplicate page id %q in sequence",
				domainErrors.ErrValidation, pageID)
		}
		seen[pageID] = true

		order, ok := current[pageID]
		if !ok {
			return nil, fmt.Errorf("%w: page id %q does not belong to this store",
				domainErrors.ErrValidation, pageID)
		}
		if order != index {
			changes = append(changes, Change{PageID: pageID, Order: index})
		}
	}
	return changes, nil
}

// MoveToIndex 拖拽语义：把 pageID 挪到 targetIndex（0 起始）
// targetIndex 越界时收敛到 [0, len-1]；挪到自己当前的位置是 no-op
func MoveToIndex(pages []entity.StorePage, pageID string, targetIndex int) ([]Change, error) {
	ids := make([]string, 0, len(pages))
	from := -1
	for i, p := range pages {
		if p.ID == pageID {
			from = i
		}
		ids = append(ids, p.ID)
	}
	if from == -1 {
		return nil, fmt.Errorf("%w: page id %q does not belong to this store",
			domainErrors.ErrValidation, pageID)
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(ids)-1 {
		targetIndex = len(ids) - 1
	}

	// 先摘出来，再插回目标位置
	ids = append(ids[:from], ids[from+1:]...)
	rest := make([]string, 0, len(ids)+1)
	rest = append(rest, ids[:targetIndex]...)
	rest = append(rest, pageID)
	rest = append(rest, ids[targetIndex:]...)

	return ApplyPermutation(pages, rest)
}
