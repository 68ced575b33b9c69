package balance_mem_repo

import (
	"context"
	"sync"

	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
)

// Репозиторий балансов в памяти процесса. Используется в дев-режиме без БД
// и в тестах. Консистентность только в рамках одного инстанса
type repo struct {
	mtx      sync.Mutex
	balances map[int]int
}

func NewBalanceRepository() repository.BalanceRepository {
	return &repo{
		balances: make(map[int]int),
	}
}

// GetBalance - текущий баланс пользователя, 0 если его еще не трогали
func (r *repo) GetBalance(_ context.Context, id int) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.balances[id], nil
}

// AddBalance - начисление на баланс. Возвращает новый баланс
func (r *repo) AddBalance(_ context.Context, id int, amount int) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if amount > 0 {
		r.balances[id] += amount
	}
	return r.balances[id], nil
}

// DeductBalance - списание с баланса. Проверка и списание выполняются
// под одним мьютексом, поэтому двойное списание невозможно.
// При нехватке средств баланс не меняется
func (r *repo) DeductBalance(_ context.Context, id int, amount int) (int, error) {
	if amount <= 0 {
		return 0, model.ErrInvalidStake
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	balance := r.balances[id]
	if balance < amount {
		return 0, model.ErrInsufficientFunds
	}

	r.balances[id] = balance - amount
	return r.balances[id], nil
}
