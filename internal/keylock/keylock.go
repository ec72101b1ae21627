package keylock

import "sync"

// ========== 按 key 串行化的互斥锁 ==========
// 同一个店铺的页面列表、同一个商品的版本集合都是单一逻辑资源，
// 变更必须按实体串行；不同实体之间互不阻塞
//
// 目录 map 用全局锁保护，entry 用引用计数管理生命周期：
// 最后一个持有者释放时把 entry 从目录里摘掉，防止 map 无限增长
// （引用计数取代了双重检查销毁，语义相同但不需要后台仲裁）

// KeyedMutex 按字符串 key 提供独立互斥锁
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	refs int
	mu   sync.Mutex
}

// New 创建 KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock 获取 key 对应的锁，阻塞直到可用
// 返回解锁函数；调用方必须 defer 调用它，且只能调用一次
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// Len 当前目录中的 entry 数量（测试用）
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
