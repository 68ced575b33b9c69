package model

// BetType - тип ставки в рулетке
type BetType string

const (
	BetNumber  BetType = "number"
	BetColor   BetType = "color"
	BetOddEven BetType = "odd_even"
)

// Значения ставок для типов color и odd_even
const (
	BetValueRed   = "red"
	BetValueBlack = "black"
	BetValueOdd   = "odd"
	BetValueEven  = "even"
)

type RouletteSpin struct {
	Bet     int
	BetType BetType
	Value   string // Число "0".."36" для number, цвет или четность для остальных типов
}

type RouletteResult struct {
	WinningNumber int
	Outcome       Outcome
	TokensChange  int
	Balance       int
	Animation     string
}
