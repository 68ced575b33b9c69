package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"arcade_backend/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestGamesConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewGamesConfigFromYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	if got := cfg.Slot().Stake(); got != 2 {
		t.Errorf("slot stake = %d, want 2", got)
	}
	if got := cfg.Gacha().SingleCost(); got != 50 {
		t.Errorf("gacha single cost = %d, want 50", got)
	}
}

func TestGamesConfigMalformedFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "slot: [not a mapping")

	cfg, err := NewGamesConfigFromYAML(path)
	if !errors.Is(err, model.ErrConfigParse) {
		t.Fatalf("err = %v, want ErrConfigParse", err)
	}

	// Несмотря на ошибку, возвращается рабочая конфигурация по умолчанию
	if got := cfg.Slot().BaseWinProb(); got != 0.10 {
		t.Errorf("base win prob = %v, want 0.10", got)
	}
	if got := cfg.Roulette().MaxBet(); got != 50 {
		t.Errorf("max bet = %d, want 50", got)
	}
}

func TestGamesConfigInvalidValuesFallBackToDefaults(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "negative stake",
			content: "slot:\n  stake: -1\n",
		},
		{
			name:    "probability above one",
			content: "slot:\n  base_win_prob: 1.5\n",
		},
		{
			name:    "inverted bet range",
			content: "roulette:\n  min_bet: 50\n  max_bet: 1\n",
		},
		{
			name: "rarity probs do not sum to one",
			content: `gacha:
  rarity_table:
    - rarity: common
      prob: 0.5
    - rarity: epic
      prob: 0.1
`,
		},
		{
			name: "pity rarity not in table",
			content: `gacha:
  pity_rarity: mythic
`,
		},
		{
			name: "unknown segment",
			content: `segments:
  house_edge:
    vip: 0.2
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)

			cfg, err := NewGamesConfigFromYAML(path)
			if !errors.Is(err, model.ErrConfigParse) {
				t.Fatalf("err = %v, want ErrConfigParse", err)
			}
			if got := cfg.Slot().Stake(); got != 2 {
				t.Errorf("slot stake = %d, want default 2", got)
			}
		})
	}
}

func TestGamesConfigPartialOverride(t *testing.T) {
	path := writeConfig(t, "roulette:\n  max_bet: 200\n")

	cfg, err := NewGamesConfigFromYAML(path)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	// Переопределено из файла
	if got := cfg.Roulette().MaxBet(); got != 200 {
		t.Errorf("max bet = %d, want 200", got)
	}
	// Остальное - значения по умолчанию
	if got := cfg.Roulette().MinBet(); got != 1 {
		t.Errorf("min bet = %d, want 1", got)
	}
	if got := cfg.Slot().JackpotReward(); got != 100 {
		t.Errorf("jackpot reward = %d, want 100", got)
	}
}

func TestDefaultGamesConfigRarityTable(t *testing.T) {
	cfg := DefaultGamesConfig()

	table := cfg.Gacha().RarityTable()
	if len(table) != 4 {
		t.Fatalf("rarity table length = %d, want 4", len(table))
	}
	// Таблица упорядочена от низшего тира к высшему
	if table[0].Rarity != model.RarityCommon {
		t.Errorf("table[0] = %q, want %q", table[0].Rarity, model.RarityCommon)
	}
	if table[3].Rarity != model.RarityLegendary {
		t.Errorf("table[3] = %q, want %q", table[3].Rarity, model.RarityLegendary)
	}

	sum := 0.0
	for _, tier := range table {
		sum += tier.Prob
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("probabilities sum = %v, want ~1.0", sum)
	}
}
