package roulette

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/internal/service/segment"
	"arcade_backend/pkg/keylock"
	"arcade_backend/pkg/rng"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	cfg         config.RouletteConfig
	policy      *segment.Policy
	balanceRepo repository.BalanceRepository
	stateRepo   repository.StateRepository
	txManager   trm.Manager
	locks       *keylock.KeyedMutex
	rand        rng.Source
}

// NewRouletteService - создает движок рулетки
func NewRouletteService(
	cfg config.RouletteConfig,
	policy *segment.Policy,
	balanceRepo repository.BalanceRepository,
	stateRepo repository.StateRepository,
	txManager trm.Manager,
	locks *keylock.KeyedMutex,
	rand rng.Source,
) service.RouletteService {
	return &serv{
		cfg:         cfg,
		policy:      policy,
		balanceRepo: balanceRepo,
		stateRepo:   stateRepo,
		txManager:   txManager,
		locks:       locks,
		rand:        rand,
	}
}
