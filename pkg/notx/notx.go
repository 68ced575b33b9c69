package notx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Manager - заглушка trm.Manager для режима работы без БД.
// Просто выполняет функцию без открытия транзакции
type Manager struct{}

func NewManager() Manager {
	return Manager{}
}

func (Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (Manager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
