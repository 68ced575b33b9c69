package gacha

import (
	"sync"

	"arcade_backend/internal/config"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/keylock"
	"arcade_backend/pkg/rng"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	cfg         config.GachaConfig
	balanceRepo repository.BalanceRepository
	stateRepo   repository.StateRepository
	txManager   trm.Manager
	locks       *keylock.KeyedMutex
	rand        rng.Source

	// Ранг тира - его позиция в таблице редкостей. Первый тир - самый низкий
	rarityRank map[model.Rarity]int
	lowest     model.Rarity

	// Остаток конечного пула наград. nil - пул не задан, награды бесконечны.
	// Пул живет в памяти процесса: при нескольких инстансах каждый истощает свой
	poolMtx sync.Mutex
	pool    map[model.Rarity]int
}

// NewGachaService - создает гача-движок
func NewGachaService(
	cfg config.GachaConfig,
	balanceRepo repository.BalanceRepository,
	stateRepo repository.StateRepository,
	txManager trm.Manager,
	locks *keylock.KeyedMutex,
	rand rng.Source,
) service.GachaService {
	table := cfg.RarityTable()

	rank := make(map[model.Rarity]int, len(table))
	for i, tier := range table {
		rank[tier.Rarity] = i
	}

	var pool map[model.Rarity]int
	if len(cfg.RewardPool()) > 0 {
		pool = make(map[model.Rarity]int, len(cfg.RewardPool()))
		for rarity, count := range cfg.RewardPool() {
			pool[rarity] = count
		}
	}

	return &serv{
		cfg:         cfg,
		balanceRepo: balanceRepo,
		stateRepo:   stateRepo,
		txManager:   txManager,
		locks:       locks,
		rand:        rand,
		rarityRank:  rank,
		lowest:      table[0].Rarity,
		pool:        pool,
	}
}
