package config

import (
	"time"

	"arcade_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// RarityTier - одна строка таблицы редкостей гачи.
// Порядок строк в таблице значим: первая строка - самый низкий тир
type RarityTier struct {
	Rarity model.Rarity
	Prob   float64
}

// SlotConfig - параметры слот-движка
type SlotConfig interface {
	Stake() int
	BaseWinProb() float64
	StreakBonusStep() float64
	StreakBonusCap() float64
	JackpotProb() float64
	ForcedWinStreak() int
	WinReward() int
	JackpotReward() int
}

// RouletteConfig - параметры рулетки
type RouletteConfig interface {
	MinBet() int
	MaxBet() int
}

// GachaConfig - параметры гачи
type GachaConfig interface {
	SingleCost() int
	TenCost() int
	PityThreshold() int
	PityRarity() model.Rarity
	// RarityTable - упорядоченная таблица (тег, базовая вероятность), сумма ~1.0
	RarityTable() []RarityTier
	// RewardPool - опциональный конечный пул наград по тирам. Пустая мапа - пула нет
	RewardPool() map[model.Rarity]int
}

// SegmentConfig - корректировки вероятностей и house edge по сегментам
type SegmentConfig interface {
	WinProbAdjust() map[model.Segment]float64
	HouseEdge() map[model.Segment]float64
	DefaultHouseEdge() float64
}

// GamesConfig - совокупная игровая конфигурация
type GamesConfig interface {
	Slot() SlotConfig
	Roulette() RouletteConfig
	Gacha() GachaConfig
	Segments() SegmentConfig
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
