package roulette

type SpinRequest struct {
	Bet     int    `json:"bet"`      // Размер ставки, зажимается в допустимый диапазон
	BetType string `json:"bet_type"` // number | color | odd_even
	Value   string `json:"value"`    // "0".."36", red | black, odd | even
}

type SpinResponse struct {
	WinningNumber int    `json:"winning_number"` // Выпавшее число 0..36
	Result        string `json:"result"`         // win | lose
	TokensChange  int    `json:"tokens_change"`  // Выплата минус ставка
	Balance       int    `json:"balance"`        // Баланс после спина
	Animation     string `json:"animation"`      // Тег анимации для клиента
}
