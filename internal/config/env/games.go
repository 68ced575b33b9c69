package env

import (
	"fmt"
	"math"
	"os"

	"arcade_backend/internal/config"
	"arcade_backend/internal/model"

	"gopkg.in/yaml.v3"
)

// Сырые структуры для разбора config.yaml
type gamesYAML struct {
	Slot     slotYAML     `yaml:"slot"`
	Roulette rouletteYAML `yaml:"roulette"`
	Gacha    gachaYAML    `yaml:"gacha"`
	Segments segmentsYAML `yaml:"segments"`
}

type slotYAML struct {
	Stake           int     `yaml:"stake"`
	BaseWinProb     float64 `yaml:"base_win_prob"`
	StreakBonusStep float64 `yaml:"streak_bonus_step"`
	StreakBonusCap  float64 `yaml:"streak_bonus_cap"`
	JackpotProb     float64 `yaml:"jackpot_prob"`
	ForcedWinStreak int     `yaml:"forced_win_streak"`
	WinReward       int     `yaml:"win_reward"`
	JackpotReward   int     `yaml:"jackpot_reward"`
}

type rouletteYAML struct {
	MinBet int `yaml:"min_bet"`
	MaxBet int `yaml:"max_bet"`
}

type rarityTierYAML struct {
	Rarity string  `yaml:"rarity"`
	Prob   float64 `yaml:"prob"`
}

type gachaYAML struct {
	SingleCost    int              `yaml:"single_cost"`
	TenCost       int              `yaml:"ten_cost"`
	PityThreshold int              `yaml:"pity_threshold"`
	PityRarity    string           `yaml:"pity_rarity"`
	RarityTable   []rarityTierYAML `yaml:"rarity_table"`
	RewardPool    map[string]int   `yaml:"reward_pool"`
}

type segmentsYAML struct {
	WinProbAdjust    map[string]float64 `yaml:"win_prob_adjust"`
	HouseEdge        map[string]float64 `yaml:"house_edge"`
	DefaultHouseEdge float64            `yaml:"default_house_edge"`
}

// defaultGamesYAML - канонические значения игровой математики.
// Используются при отсутствии config.yaml и при любой ошибке разбора
func defaultGamesYAML() gamesYAML {
	return gamesYAML{
		Slot: slotYAML{
			Stake:           2,
			BaseWinProb:     0.10,
			StreakBonusStep: 0.01,
			StreakBonusCap:  0.05,
			JackpotProb:     0.01,
			ForcedWinStreak: 7,
			WinReward:       10,
			JackpotReward:   100,
		},
		Roulette: rouletteYAML{
			MinBet: 1,
			MaxBet: 50,
		},
		Gacha: gachaYAML{
			SingleCost:    50,
			TenCost:       450,
			PityThreshold: 90,
			PityRarity:    string(model.RarityEpic),
			RarityTable: []rarityTierYAML{
				{Rarity: string(model.RarityCommon), Prob: 0.60},
				{Rarity: string(model.RarityRare), Prob: 0.25},
				{Rarity: string(model.RarityEpic), Prob: 0.12},
				{Rarity: string(model.RarityLegendary), Prob: 0.03},
			},
			RewardPool: map[string]int{},
		},
		Segments: segmentsYAML{
			WinProbAdjust: map[string]float64{
				string(model.SegmentLow):    -0.02,
				string(model.SegmentMedium): 0.0,
				string(model.SegmentWhale):  0.02,
			},
			HouseEdge: map[string]float64{
				string(model.SegmentLow):    0.15,
				string(model.SegmentMedium): 0.10,
				string(model.SegmentWhale):  0.05,
			},
			DefaultHouseEdge: 0.10,
		},
	}
}

// validateGamesYAML - строгая проверка конфигурации после разбора.
// Любая ошибка означает откат на значения по умолчанию целиком
func validateGamesYAML(g gamesYAML) error {
	if g.Slot.Stake <= 0 {
		return fmt.Errorf("slot: stake must be positive")
	}
	if g.Slot.BaseWinProb < 0 || g.Slot.BaseWinProb > 1 {
		return fmt.Errorf("slot: base_win_prob out of [0,1]")
	}
	if g.Slot.StreakBonusStep < 0 || g.Slot.StreakBonusCap < 0 {
		return fmt.Errorf("slot: streak bonus values must be non-negative")
	}
	if g.Slot.JackpotProb < 0 || g.Slot.JackpotProb > 1 {
		return fmt.Errorf("slot: jackpot_prob out of [0,1]")
	}
	if g.Slot.ForcedWinStreak <= 0 {
		return fmt.Errorf("slot: forced_win_streak must be positive")
	}
	if g.Slot.WinReward < 0 || g.Slot.JackpotReward < 0 {
		return fmt.Errorf("slot: rewards must be non-negative")
	}

	if g.Roulette.MinBet <= 0 || g.Roulette.MaxBet < g.Roulette.MinBet {
		return fmt.Errorf("roulette: invalid bet range [%d, %d]", g.Roulette.MinBet, g.Roulette.MaxBet)
	}

	if g.Gacha.SingleCost <= 0 || g.Gacha.TenCost <= 0 {
		return fmt.Errorf("gacha: pull costs must be positive")
	}
	if g.Gacha.PityThreshold <= 0 {
		return fmt.Errorf("gacha: pity_threshold must be positive")
	}
	if len(g.Gacha.RarityTable) == 0 {
		return fmt.Errorf("gacha: rarity_table is empty")
	}

	sum := 0.0
	seen := make(map[string]struct{}, len(g.Gacha.RarityTable))
	for _, tier := range g.Gacha.RarityTable {
		if tier.Rarity == "" {
			return fmt.Errorf("gacha: rarity tag is empty")
		}
		if _, ok := seen[tier.Rarity]; ok {
			return fmt.Errorf("gacha: duplicate rarity %q", tier.Rarity)
		}
		seen[tier.Rarity] = struct{}{}
		if tier.Prob <= 0 || tier.Prob > 1 {
			return fmt.Errorf("gacha: probability of %q out of (0,1]", tier.Rarity)
		}
		sum += tier.Prob
	}
	// Сумма вероятности должна быть ~1.0, допускаем погрешность округления
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("gacha: rarity probabilities sum to %.4f, want ~1.0", sum)
	}
	if _, ok := seen[g.Gacha.PityRarity]; !ok {
		return fmt.Errorf("gacha: pity_rarity %q not present in rarity_table", g.Gacha.PityRarity)
	}
	for rarity, count := range g.Gacha.RewardPool {
		if _, ok := seen[rarity]; !ok {
			return fmt.Errorf("gacha: reward_pool rarity %q not present in rarity_table", rarity)
		}
		if count < 0 {
			return fmt.Errorf("gacha: reward_pool count of %q is negative", rarity)
		}
	}

	for _, m := range []map[string]float64{g.Segments.WinProbAdjust, g.Segments.HouseEdge} {
		for segment := range m {
			if model.Segment(segment) != model.ParseSegment(segment) {
				return fmt.Errorf("segments: unknown segment %q", segment)
			}
		}
	}
	for segment, edge := range g.Segments.HouseEdge {
		if edge < 0 || edge >= 1 {
			return fmt.Errorf("segments: house edge of %q out of [0,1)", segment)
		}
	}
	if g.Segments.DefaultHouseEdge < 0 || g.Segments.DefaultHouseEdge >= 1 {
		return fmt.Errorf("segments: default_house_edge out of [0,1)")
	}

	return nil
}

// Реализации конфигурационных интерфейсов

type slotConfig struct{ raw slotYAML }

func (c *slotConfig) Stake() int               { return c.raw.Stake }
func (c *slotConfig) BaseWinProb() float64     { return c.raw.BaseWinProb }
func (c *slotConfig) StreakBonusStep() float64 { return c.raw.StreakBonusStep }
func (c *slotConfig) StreakBonusCap() float64  { return c.raw.StreakBonusCap }
func (c *slotConfig) JackpotProb() float64     { return c.raw.JackpotProb }
func (c *slotConfig) ForcedWinStreak() int     { return c.raw.ForcedWinStreak }
func (c *slotConfig) WinReward() int           { return c.raw.WinReward }
func (c *slotConfig) JackpotReward() int       { return c.raw.JackpotReward }

type rouletteConfig struct{ raw rouletteYAML }

func (c *rouletteConfig) MinBet() int { return c.raw.MinBet }
func (c *rouletteConfig) MaxBet() int { return c.raw.MaxBet }

type gachaConfig struct {
	raw   gachaYAML
	table []config.RarityTier
	pool  map[model.Rarity]int
}

func (c *gachaConfig) SingleCost() int                  { return c.raw.SingleCost }
func (c *gachaConfig) TenCost() int                     { return c.raw.TenCost }
func (c *gachaConfig) PityThreshold() int               { return c.raw.PityThreshold }
func (c *gachaConfig) PityRarity() model.Rarity         { return model.Rarity(c.raw.PityRarity) }
func (c *gachaConfig) RarityTable() []config.RarityTier { return c.table }
func (c *gachaConfig) RewardPool() map[model.Rarity]int { return c.pool }

type segmentConfig struct {
	adjust map[model.Segment]float64
	edges  map[model.Segment]float64
	def    float64
}

func (c *segmentConfig) WinProbAdjust() map[model.Segment]float64 { return c.adjust }
func (c *segmentConfig) HouseEdge() map[model.Segment]float64     { return c.edges }
func (c *segmentConfig) DefaultHouseEdge() float64                { return c.def }

type gamesConfig struct {
	slot     slotConfig
	roulette rouletteConfig
	gacha    gachaConfig
	segments segmentConfig
}

func (c *gamesConfig) Slot() config.SlotConfig         { return &c.slot }
func (c *gamesConfig) Roulette() config.RouletteConfig { return &c.roulette }
func (c *gamesConfig) Gacha() config.GachaConfig       { return &c.gacha }
func (c *gamesConfig) Segments() config.SegmentConfig  { return &c.segments }

func buildGamesConfig(raw gamesYAML) *gamesConfig {
	table := make([]config.RarityTier, 0, len(raw.Gacha.RarityTable))
	for _, tier := range raw.Gacha.RarityTable {
		table = append(table, config.RarityTier{
			Rarity: model.Rarity(tier.Rarity),
			Prob:   tier.Prob,
		})
	}

	pool := make(map[model.Rarity]int, len(raw.Gacha.RewardPool))
	for rarity, count := range raw.Gacha.RewardPool {
		pool[model.Rarity(rarity)] = count
	}

	adjust := make(map[model.Segment]float64, len(raw.Segments.WinProbAdjust))
	for segment, v := range raw.Segments.WinProbAdjust {
		adjust[model.Segment(segment)] = v
	}
	edges := make(map[model.Segment]float64, len(raw.Segments.HouseEdge))
	for segment, v := range raw.Segments.HouseEdge {
		edges[model.Segment(segment)] = v
	}

	return &gamesConfig{
		slot:     slotConfig{raw: raw.Slot},
		roulette: rouletteConfig{raw: raw.Roulette},
		gacha:    gachaConfig{raw: raw.Gacha, table: table, pool: pool},
		segments: segmentConfig{adjust: adjust, edges: edges, def: raw.Segments.DefaultHouseEdge},
	}
}

// DefaultGamesConfig - игровая конфигурация по умолчанию
func DefaultGamesConfig() config.GamesConfig {
	return buildGamesConfig(defaultGamesYAML())
}

// NewGamesConfigFromYAML - загружает игровую конфигурацию из YAML файла.
// Отсутствующий файл - не ошибка, работаем на значениях по умолчанию.
// Битый или невалидный файл тоже не роняет процесс: возвращаются значения
// по умолчанию и ошибка model.ErrConfigParse для логирования вызывающим
func NewGamesConfigFromYAML(path string) (config.GamesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultGamesConfig(), nil
		}
		return DefaultGamesConfig(), fmt.Errorf("%w: read %s: %v", model.ErrConfigParse, path, err)
	}

	// Частичные переопределения накладываются поверх значений по умолчанию
	raw := defaultGamesYAML()
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DefaultGamesConfig(), fmt.Errorf("%w: parse %s: %v", model.ErrConfigParse, path, err)
	}

	if err := validateGamesYAML(raw); err != nil {
		return DefaultGamesConfig(), fmt.Errorf("%w: %v", model.ErrConfigParse, err)
	}

	return buildGamesConfig(raw), nil
}
