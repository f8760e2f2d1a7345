package service

import "sync"

// keyedMutex 按 key 串行化的互斥锁集合
//
// 仲裁操作的「读-判-写」序列必须对同一逻辑资源互斥：研讨厅以 date 为 key，
// 面谈申请以 teacherID+date 为 key。不同 key 互不阻塞。
// 锁条目只增不减——key 是日期粒度的，数量有界，不做回收。
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock 锁定指定 key，返回对应的解锁函数
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
