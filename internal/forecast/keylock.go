package forecast

import "sync"

// KeyLock 상품 단위 상호 배제
// 같은 상품의 파이프라인/경고 실행이 겹치면 교체 단위가 반쯤 쓰인 상태로
// 관측될 수 있어, 실행을 상품별로 직렬화한다
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewKeyLock 새 락 테이블 생성
func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[int64]*sync.Mutex)}
}

// Lock 해당 키의 락 획득
func (k *KeyLock) Lock(id int64) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock 해당 키의 락 해제
func (k *KeyLock) Unlock(id int64) {
	k.mu.Lock()
	m := k.locks[id]
	k.mu.Unlock()

	if m != nil {
		m.Unlock()
	}
}
