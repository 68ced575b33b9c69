package keylock

import "sync"

const shardCount = 64

// KeyedMutex - набор мьютексов, шардированных по ID пользователя.
// Все мутации состояния одного пользователя (баланс, стрик, счетчики гачи)
// сериализуются через него; разные пользователи почти всегда попадают
// в разные шарды и друг друга не блокируют
type KeyedMutex struct {
	shards [shardCount]sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock - блокирует шард для данного ID. Возвращает функцию разблокировки
func (m *KeyedMutex) Lock(id int) func() {
	shard := &m.shards[uint(id)%shardCount]
	shard.Lock()
	return shard.Unlock
}
