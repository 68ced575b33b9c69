package rng

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/big"
	"math/rand/v2"
)

// Source - источник случайности для игровых движков.
// Внедряется через конструктор сервиса, чтобы в тестах исходы были воспроизводимы
type Source interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// Криптографический источник - значение по умолчанию в продакшене
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// Крайне маловероятно, но на всякий случай откатываемся на math/rand/v2
		return rand.Float64()
	}

	// Старшие 53 бита дают равномерный float64 в [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

func Default() Source { return cryptoSource{} }

// Детерминированный источник для тестов и симуляций
type seededSource struct {
	r *rand.Rand
}

func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
