package repository

import (
	"context"

	"arcade_backend/internal/model"
)

// BalanceRepository - хранилище балансов пользователей.
// Баланс никогда не уходит в минус: DeductBalance списывает только при
// достаточном балансе, иначе возвращает model.ErrInsufficientFunds и
// ничего не меняет. Методы возвращают баланс после операции
type BalanceRepository interface {
	GetBalance(ctx context.Context, id int) (int, error)
	AddBalance(ctx context.Context, id int, amount int) (int, error)
	DeductBalance(ctx context.Context, id int, amount int) (int, error)
}

// StateRepository - вспомогательное пер-пользовательское состояние движков:
// стрик проигрышей, счетчик круток гачи, ограниченная история редкостей,
// сегмент пользователя и журнал действий. Реализация обязана переживать
// недоступность внешнего кэша, откатываясь на процесс-локальное хранилище
type StateRepository interface {
	GetStreak(ctx context.Context, id int) (int, error)
	SetStreak(ctx context.Context, id int, streak int) error

	GetGachaCount(ctx context.Context, id int) (int, error)
	SetGachaCount(ctx context.Context, id int, count int) error

	// История отсортирована от самой свежей к самой старой, не длиннее 10
	// записей. Обрезать до 10 перед записью должен вызывающий
	GetGachaHistory(ctx context.Context, id int) ([]model.Rarity, error)
	SetGachaHistory(ctx context.Context, id int, history []model.Rarity) error

	// GetUserSegment - сегмент пользователя из кэша, Low если неизвестен
	GetUserSegment(ctx context.Context, id int) model.Segment

	// RecordAction - запись в журнал действий. Ошибка записи логируется,
	// но никогда не роняет вызвавшую операцию
	RecordAction(ctx context.Context, id int, actionType string, value int)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	BalanceRepository

	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}
