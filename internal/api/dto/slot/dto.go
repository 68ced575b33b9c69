package slot

type SpinRequest struct {
	Stake int `json:"stake"` // Размер ставки, 0 - ставка по умолчанию
}

type SpinResponse struct {
	Result       string `json:"result"`        // win | lose | jackpot
	TokensChange int    `json:"tokens_change"` // Награда минус ставка
	Balance      int    `json:"balance"`       // Баланс после спина
	Streak       int    `json:"streak"`        // Стрик проигрышей после спина
	Animation    string `json:"animation"`     // Тег анимации для клиента
}
