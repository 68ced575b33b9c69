package slot

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
	cfg         config.SlotConfig
	policy      *segment.Policy
	balanceRepo repository.BalanceRepository
	stateRepo   repository.StateRepository
	txManager   trm.Manager
	locks       *keylock.KeyedMutex
	rand        rng.Source
}

// NewSlotService - создает слот-движок.
// locks разделяется всеми игровыми сервисами: мутации состояния одного
// пользователя сериализуются независимо от того, в какую игру он играет
func NewSlotService(
	cfg config.SlotConfig,
	policy *segment.Policy,
	balanceRepo repository.BalanceRepository,
	stateRepo repository.StateRepository,
	txManager trm.Manager,
	locks *keylock.KeyedMutex,
	rand rng.Source,
) service.SlotService {
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
