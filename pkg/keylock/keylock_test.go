package keylock

import (
	"sync"
	"testing"
)

func TestLockSerializesSameKey(t *testing.T) {
	m := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Errorf("counter = %d, want %d", counter, goroutines)
	}
}

func TestLockDifferentKeysIndependent(t *testing.T) {
	m := New()

	// Ключи из разных шардов не блокируют друг друга
	unlockA := m.Lock(1)
	unlockB := m.Lock(2)
	unlockB()
	unlockA()
}

func TestLockNegativeKey(t *testing.T) {
	m := New()

	unlock := m.Lock(-5)
	unlock()
}
