package model

// Rarity - тег редкости добычи в гаче
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type GachaPull struct {
	Count int
}

type GachaResult struct {
	Results      []Rarity
	TokensChange int
	Balance      int
}
