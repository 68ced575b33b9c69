package wallet

import (
	"context"
	"errors"

	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/keylock"
)

type serv struct {
	balanceRepo repository.BalanceRepository
	stateRepo   repository.StateRepository
	locks       *keylock.KeyedMutex
}

// NewWalletService - операции с кошельком вне игровых движков
func NewWalletService(
	balanceRepo repository.BalanceRepository,
	stateRepo repository.StateRepository,
	locks *keylock.KeyedMutex,
) service.WalletService {
	return &serv{
		balanceRepo: balanceRepo,
		stateRepo:   stateRepo,
		locks:       locks,
	}
}

// Deposit - пополнение баланса пользователя
func (s *serv) Deposit(ctx context.Context, amount int) (*model.WalletData, error) {
	if amount <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	balance, err := s.balanceRepo.AddBalance(ctx, userID, amount)
	if err != nil {
		return nil, err
	}
	s.stateRepo.RecordAction(ctx, userID, model.ActionDeposit, amount)

	return &model.WalletData{Balance: balance}, nil
}

// Balance - текущий баланс пользователя
func (s *serv) Balance(ctx context.Context) (*model.WalletData, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	balance, err := s.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.WalletData{Balance: balance}, nil
}
