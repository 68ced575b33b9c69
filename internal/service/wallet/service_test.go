package wallet

import (
	"context"
	"testing"

	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository/balance_mem_repo"
	"arcade_backend/pkg/keylock"
)

type fakeState struct {
	actions []string
}

func (f *fakeState) GetStreak(_ context.Context, id int) (int, error)         { return 0, nil }
func (f *fakeState) SetStreak(_ context.Context, id int, streak int) error    { return nil }
func (f *fakeState) GetGachaCount(_ context.Context, id int) (int, error)     { return 0, nil }
func (f *fakeState) SetGachaCount(_ context.Context, id int, count int) error { return nil }
func (f *fakeState) GetGachaHistory(_ context.Context, id int) ([]model.Rarity, error) {
	return nil, nil
}
func (f *fakeState) SetGachaHistory(_ context.Context, id int, history []model.Rarity) error {
	return nil
}
func (f *fakeState) GetUserSegment(_ context.Context, id int) model.Segment {
	return model.SegmentLow
}
func (f *fakeState) RecordAction(_ context.Context, id int, actionType string, value int) {
	f.actions = append(f.actions, actionType)
}

func TestDeposit(t *testing.T) {
	state := &fakeState{}
	s := NewWalletService(balance_mem_repo.NewBalanceRepository(), state, keylock.New())
	ctx := middleware.WithUserID(context.Background(), 1)

	data, err := s.Deposit(ctx, 250)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if data.Balance != 250 {
		t.Errorf("balance = %d, want 250", data.Balance)
	}
	if len(state.actions) != 1 || state.actions[0] != model.ActionDeposit {
		t.Errorf("actions = %v, want [%s]", state.actions, model.ActionDeposit)
	}
}

func TestDepositNonPositive(t *testing.T) {
	s := NewWalletService(balance_mem_repo.NewBalanceRepository(), &fakeState{}, keylock.New())
	ctx := middleware.WithUserID(context.Background(), 1)

	for _, amount := range []int{0, -100} {
		if _, err := s.Deposit(ctx, amount); err == nil {
			t.Errorf("Deposit(%d): err = nil, want error", amount)
		}
	}
}

func TestBalance(t *testing.T) {
	balances := balance_mem_repo.NewBalanceRepository()
	if _, err := balances.AddBalance(context.Background(), 1, 77); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}

	s := NewWalletService(balances, &fakeState{}, keylock.New())

	data, err := s.Balance(middleware.WithUserID(context.Background(), 1))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if data.Balance != 77 {
		t.Errorf("balance = %d, want 77", data.Balance)
	}
}

func TestDepositRequiresUser(t *testing.T) {
	s := NewWalletService(balance_mem_repo.NewBalanceRepository(), &fakeState{}, keylock.New())

	if _, err := s.Deposit(context.Background(), 10); err == nil {
		t.Error("Deposit without user in context: err = nil, want error")
	}
}
