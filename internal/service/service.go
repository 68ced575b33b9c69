package service

import (
	"context"

	"arcade_backend/internal/model"
)

// SlotService - слот-движок: списывает ставку, разыгрывает исход с учетом
// сегмента и стрика, начисляет награду и возвращает результат с балансом
type SlotService interface {
	Spin(ctx context.Context, spinReq model.SlotSpin) (*model.SlotResult, error)
}

// RouletteService - рулетка с house edge по сегменту
type RouletteService interface {
	Spin(ctx context.Context, spinReq model.RouletteSpin) (*model.RouletteResult, error)
}

// GachaService - гача с анти-дубликатами, pity-правилом и пулом наград
type GachaService interface {
	Pull(ctx context.Context, pullReq model.GachaPull) (*model.GachaResult, error)
}

// WalletService - операции с кошельком вне игровых движков
type WalletService interface {
	Deposit(ctx context.Context, amount int) (*model.WalletData, error)
	Balance(ctx context.Context) (*model.WalletData, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID string, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
