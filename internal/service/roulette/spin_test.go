package roulette

import (
	"context"
	"errors"
	"testing"

	"arcade_backend/internal/config/env"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/repository/balance_mem_repo"
	"arcade_backend/internal/service/segment"
	"arcade_backend/pkg/keylock"
	"arcade_backend/pkg/notx"
)

type fakeState struct {
	segments map[int]model.Segment
	actions  []string
}

func newFakeState() *fakeState {
	return &fakeState{segments: make(map[int]model.Segment)}
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
	if seg, ok := f.segments[id]; ok {
		return seg
	}
	return model.SegmentLow
}
func (f *fakeState) RecordAction(_ context.Context, id int, actionType string, value int) {
	f.actions = append(f.actions, actionType)
}

// stubRand - фиксированное выигрышное число
type stubRand struct {
	number int
}

func (s *stubRand) Float64() float64 { return 0 }
func (s *stubRand) IntN(n int) int   { return s.number % n }

func newTestService(state *fakeState, r *stubRand) (*serv, repository.BalanceRepository) {
	cfg := env.DefaultGamesConfig()
	balanceRepo := balance_mem_repo.NewBalanceRepository()
	s := NewRouletteService(
		cfg.Roulette(),
		segment.NewPolicy(cfg.Segments()),
		balanceRepo,
		state,
		notx.NewManager(),
		keylock.New(),
		r,
	).(*serv)
	return s, balanceRepo
}

func userCtx(id int) context.Context {
	return middleware.WithUserID(context.Background(), id)
}

func seed(t *testing.T, balances repository.BalanceRepository, id, amount int) {
	t.Helper()
	if _, err := balances.AddBalance(context.Background(), id, amount); err != nil {
		t.Fatalf("seed balance: %v", err)
	}
}

func TestSpinNumberBetPayout(t *testing.T) {
	state := newFakeState()
	state.segments[1] = model.SegmentMedium

	// Medium: edge 0.10, ставка 10 на число 7, выпадает 7.
	// Выплата floor(10 * 35 * 0.9) = 315, изменение баланса +305
	s, balances := newTestService(state, &stubRand{number: 7})
	seed(t, balances, 1, 100)

	res, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     10,
		BetType: model.BetNumber,
		Value:   "7",
	})
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.WinningNumber != 7 {
		t.Errorf("winning_number = %d, want 7", res.WinningNumber)
	}
	if res.Outcome != model.OutcomeWin {
		t.Errorf("outcome = %q, want %q", res.Outcome, model.OutcomeWin)
	}
	if res.TokensChange != 305 {
		t.Errorf("tokens_change = %d, want 305", res.TokensChange)
	}
	if res.Balance != 405 {
		t.Errorf("balance = %d, want 405", res.Balance)
	}
}

func TestSpinNumberBetMiss(t *testing.T) {
	state := newFakeState()

	s, balances := newTestService(state, &stubRand{number: 12})
	seed(t, balances, 1, 100)

	res, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     10,
		BetType: model.BetNumber,
		Value:   "7",
	})
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.Outcome != model.OutcomeLose {
		t.Errorf("outcome = %q, want %q", res.Outcome, model.OutcomeLose)
	}
	if res.TokensChange != -10 {
		t.Errorf("tokens_change = %d, want -10", res.TokensChange)
	}
	if res.Balance != 90 {
		t.Errorf("balance = %d, want 90", res.Balance)
	}
}

func TestSpinColorBetPayout(t *testing.T) {
	state := newFakeState()
	state.segments[1] = model.SegmentWhale

	// Whale: edge 0.05. Нечетное 15 - красное.
	// Выплата floor(20 * 0.95) = 19: меньше ставки даже при выигрыше
	s, balances := newTestService(state, &stubRand{number: 15})
	seed(t, balances, 1, 100)

	res, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     20,
		BetType: model.BetColor,
		Value:   model.BetValueRed,
	})
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.Outcome != model.OutcomeWin {
		t.Errorf("outcome = %q, want %q", res.Outcome, model.OutcomeWin)
	}
	if res.TokensChange != -1 {
		t.Errorf("tokens_change = %d, want -1", res.TokensChange)
	}
	if res.Balance != 99 {
		t.Errorf("balance = %d, want 99", res.Balance)
	}
}

func TestSpinZeroMatchesNothing(t *testing.T) {
	bets := []model.RouletteSpin{
		{Bet: 10, BetType: model.BetColor, Value: model.BetValueRed},
		{Bet: 10, BetType: model.BetColor, Value: model.BetValueBlack},
		{Bet: 10, BetType: model.BetOddEven, Value: model.BetValueOdd},
		{Bet: 10, BetType: model.BetOddEven, Value: model.BetValueEven},
	}

	for _, bet := range bets {
		state := newFakeState()
		s, balances := newTestService(state, &stubRand{number: 0})
		seed(t, balances, 1, 100)

		res, err := s.Spin(userCtx(1), bet)
		if err != nil {
			t.Fatalf("Spin (%s %s): %v", bet.BetType, bet.Value, err)
		}
		if res.Outcome != model.OutcomeLose {
			t.Errorf("%s %s: outcome = %q, want %q", bet.BetType, bet.Value, res.Outcome, model.OutcomeLose)
		}
		if res.TokensChange != -10 {
			t.Errorf("%s %s: tokens_change = %d, want -10", bet.BetType, bet.Value, res.TokensChange)
		}
	}
}

func TestSpinOddEvenBet(t *testing.T) {
	state := newFakeState()
	state.segments[1] = model.SegmentMedium

	// Четное 22, ставка на even: floor(10 * 0.9) = 9
	s, balances := newTestService(state, &stubRand{number: 22})
	seed(t, balances, 1, 100)

	res, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     10,
		BetType: model.BetOddEven,
		Value:   model.BetValueEven,
	})
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.Outcome != model.OutcomeWin {
		t.Errorf("outcome = %q, want %q", res.Outcome, model.OutcomeWin)
	}
	if res.TokensChange != -1 {
		t.Errorf("tokens_change = %d, want -1", res.TokensChange)
	}
}

func TestSpinBetClampedToRange(t *testing.T) {
	state := newFakeState()

	// Ставка 500 зажимается до max_bet = 50
	s, balances := newTestService(state, &stubRand{number: 12})
	seed(t, balances, 1, 100)

	res, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     500,
		BetType: model.BetNumber,
		Value:   "7",
	})
	if err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if res.TokensChange != -50 {
		t.Errorf("tokens_change = %d, want -50", res.TokensChange)
	}
	if res.Balance != 50 {
		t.Errorf("balance = %d, want 50", res.Balance)
	}
}

func TestSpinInvalidBetsRejected(t *testing.T) {
	cases := []model.RouletteSpin{
		{Bet: 10, BetType: model.BetNumber, Value: "37"},
		{Bet: 10, BetType: model.BetNumber, Value: "-1"},
		{Bet: 10, BetType: model.BetNumber, Value: "seven"},
		{Bet: 10, BetType: model.BetColor, Value: "green"},
		{Bet: 10, BetType: model.BetOddEven, Value: "zero"},
		{Bet: 10, BetType: "parlay", Value: "7"},
	}

	for _, bet := range cases {
		state := newFakeState()
		s, balances := newTestService(state, &stubRand{})
		seed(t, balances, 1, 100)

		_, err := s.Spin(userCtx(1), bet)
		if !errors.Is(err, model.ErrInvalidBet) {
			t.Errorf("%s %q: err = %v, want ErrInvalidBet", bet.BetType, bet.Value, err)
		}

		// Невалидная ставка ничего не списывает
		balance, err := balances.GetBalance(context.Background(), 1)
		if err != nil {
			t.Fatalf("get balance: %v", err)
		}
		if balance != 100 {
			t.Errorf("%s %q: balance = %d, want 100", bet.BetType, bet.Value, balance)
		}
	}
}

func TestSpinInsufficientFunds(t *testing.T) {
	state := newFakeState()
	s, balances := newTestService(state, &stubRand{number: 7})
	seed(t, balances, 1, 5)

	_, err := s.Spin(userCtx(1), model.RouletteSpin{
		Bet:     10,
		BetType: model.BetNumber,
		Value:   "7",
	})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if len(state.actions) != 0 {
		t.Errorf("recorded %d actions, want 0", len(state.actions))
	}
}
