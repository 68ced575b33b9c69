package gacha

import (
	"context"
	"errors"
	"testing"

	"arcade_backend/internal/config"
	"arcade_backend/internal/config/env"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/repository/balance_mem_repo"
	"arcade_backend/pkg/keylock"
	"arcade_backend/pkg/notx"
)

type fakeState struct {
	counts  map[int]int
	history map[int][]model.Rarity
	actions []string
}

func newFakeState() *fakeState {
	return &fakeState{
		counts:  make(map[int]int),
		history: make(map[int][]model.Rarity),
	}
}

func (f *fakeState) GetStreak(_ context.Context, id int) (int, error)      { return 0, nil }
func (f *fakeState) SetStreak(_ context.Context, id int, streak int) error { return nil }
func (f *fakeState) GetGachaCount(_ context.Context, id int) (int, error)  { return f.counts[id], nil }
func (f *fakeState) SetGachaCount(_ context.Context, id int, count int) error {
	f.counts[id] = count
	return nil
}
func (f *fakeState) GetGachaHistory(_ context.Context, id int) ([]model.Rarity, error) {
	return f.history[id], nil
}
func (f *fakeState) SetGachaHistory(_ context.Context, id int, history []model.Rarity) error {
	f.history[id] = history
	return nil
}
func (f *fakeState) GetUserSegment(_ context.Context, id int) model.Segment {
	return model.SegmentLow
}
func (f *fakeState) RecordAction(_ context.Context, id int, actionType string, value int) {
	f.actions = append(f.actions, actionType)
}

type stubRand struct {
	floats []float64
	pos    int
}

func (s *stubRand) Float64() float64 {
	v := s.floats[s.pos%len(s.floats)]
	s.pos++
	return v
}

func (s *stubRand) IntN(n int) int { return 0 }

func newTestService(cfg config.GachaConfig, state *fakeState, r *stubRand) (*serv, repository.BalanceRepository) {
	balanceRepo := balance_mem_repo.NewBalanceRepository()
	s := NewGachaService(
		cfg,
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

func defaultGachaCfg() config.GachaConfig {
	return env.DefaultGamesConfig().Gacha()
}

func TestPullSingleCost(t *testing.T) {
	state := newFakeState()
	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.1}})
	seed(t, balances, 1, 500)

	res, err := s.Pull(userCtx(1), model.GachaPull{Count: 1})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	if len(res.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(res.Results))
	}
	if res.TokensChange != -50 {
		t.Errorf("tokens_change = %d, want -50", res.TokensChange)
	}
	if res.Balance != 450 {
		t.Errorf("balance = %d, want 450", res.Balance)
	}
	if res.Results[0] != model.RarityCommon {
		t.Errorf("result = %q, want %q", res.Results[0], model.RarityCommon)
	}
}

func TestPullTenDiscounted(t *testing.T) {
	state := newFakeState()
	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.1}})
	seed(t, balances, 1, 500)

	res, err := s.Pull(userCtx(1), model.GachaPull{Count: 10})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	if len(res.Results) != 10 {
		t.Fatalf("results = %d, want 10", len(res.Results))
	}
	if res.TokensChange != -450 {
		t.Errorf("tokens_change = %d, want -450", res.TokensChange)
	}
	if res.Balance != 50 {
		t.Errorf("balance = %d, want 50", res.Balance)
	}
	if state.counts[1] != 10 {
		t.Errorf("pull counter = %d, want 10", state.counts[1])
	}
}

func TestPullPityUpgradesAndResetsCounter(t *testing.T) {
	state := newFakeState()
	state.counts[1] = 89

	// 0.1 выпадает в common, но 90-я крутка гарантирует epic
	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.1}})
	seed(t, balances, 1, 500)

	res, err := s.Pull(userCtx(1), model.GachaPull{Count: 1})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	if res.Results[0] != model.RarityEpic {
		t.Errorf("result = %q, want %q", res.Results[0], model.RarityEpic)
	}
	if state.counts[1] != 0 {
		t.Errorf("pull counter = %d, want 0 after pity", state.counts[1])
	}
}

func TestPullNaturalTopTierKeepsCounter(t *testing.T) {
	state := newFakeState()
	state.counts[1] = 89

	// 0.999 выпадает в legendary естественно: pity не срабатывает,
	// счетчик не сбрасывается
	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.999}})
	seed(t, balances, 1, 500)

	res, err := s.Pull(userCtx(1), model.GachaPull{Count: 1})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	if res.Results[0] != model.RarityLegendary {
		t.Errorf("result = %q, want %q", res.Results[0], model.RarityLegendary)
	}
	if state.counts[1] != 90 {
		t.Errorf("pull counter = %d, want 90", state.counts[1])
	}
}

func TestPullHistoryBoundedNewestFirst(t *testing.T) {
	state := newFakeState()
	state.history[1] = []model.Rarity{
		model.RarityRare, model.RarityRare, model.RarityRare,
		model.RarityRare, model.RarityRare,
	}

	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.99}})
	seed(t, balances, 1, 500)

	res, err := s.Pull(userCtx(1), model.GachaPull{Count: 10})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}

	stored := state.history[1]
	if len(stored) != 10 {
		t.Fatalf("history length = %d, want 10", len(stored))
	}
	// Свежайшая запись - результат последней крутки
	if stored[0] != res.Results[len(res.Results)-1] {
		t.Errorf("history[0] = %q, want last result %q", stored[0], res.Results[len(res.Results)-1])
	}
}

func TestDrawHalvesRecentTiers(t *testing.T) {
	// Common в истории: его вклад 0.30 вместо 0.60,
	// 0.35 уходит в rare вместо common
	s, _ := newTestService(defaultGachaCfg(), newFakeState(), &stubRand{floats: []float64{0.35}})

	got := s.draw([]model.Rarity{model.RarityCommon})
	if got != model.RarityRare {
		t.Errorf("draw = %q, want %q", got, model.RarityRare)
	}
}

func TestDrawMassUnderflowFallsToLowest(t *testing.T) {
	// Вся таблица в истории: суммарная масса 0.50, розыгрыш 0.9
	// не попадает ни в один тир и уходит в низший
	s, _ := newTestService(defaultGachaCfg(), newFakeState(), &stubRand{floats: []float64{0.9}})

	history := []model.Rarity{
		model.RarityCommon, model.RarityRare, model.RarityEpic, model.RarityLegendary,
	}
	got := s.draw(history)
	if got != model.RarityCommon {
		t.Errorf("draw = %q, want %q", got, model.RarityCommon)
	}
}

// poolCfg - конфигурация с конечным пулом наград
type poolCfg struct {
	config.GachaConfig
	pool map[model.Rarity]int
}

func (c *poolCfg) RewardPool() map[model.Rarity]int { return c.pool }

func TestTakeFromPoolExhaustionDegrades(t *testing.T) {
	cfg := &poolCfg{
		GachaConfig: defaultGachaCfg(),
		pool:        map[model.Rarity]int{model.RarityLegendary: 1},
	}
	s, _ := newTestService(cfg, newFakeState(), &stubRand{floats: []float64{0.1}})

	// Первая выдача забирает последний legendary
	if got := s.takeFromPool(model.RarityLegendary); got != model.RarityLegendary {
		t.Errorf("first take = %q, want %q", got, model.RarityLegendary)
	}
	// Исчерпанный тир деградирует до низшего
	if got := s.takeFromPool(model.RarityLegendary); got != model.RarityCommon {
		t.Errorf("second take = %q, want %q", got, model.RarityCommon)
	}
	// Тир без записи в пуле бесконечен
	if got := s.takeFromPool(model.RarityRare); got != model.RarityRare {
		t.Errorf("untracked take = %q, want %q", got, model.RarityRare)
	}
}

func TestPullInsufficientFundsLeavesStateUntouched(t *testing.T) {
	state := newFakeState()
	state.counts[1] = 42

	s, balances := newTestService(defaultGachaCfg(), state, &stubRand{floats: []float64{0.1}})
	seed(t, balances, 1, 10)

	_, err := s.Pull(userCtx(1), model.GachaPull{Count: 1})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	if state.counts[1] != 42 {
		t.Errorf("pull counter = %d, want 42", state.counts[1])
	}
	if len(state.actions) != 0 {
		t.Errorf("recorded %d actions, want 0", len(state.actions))
	}
}
