package gacha

type PullRequest struct {
	Count int `json:"count"` // >= 10 - десятикратная крутка, иначе одиночная
}

type PullResponse struct {
	Results      []string `json:"results"`       // Теги редкостей в порядке выпадения
	TokensChange int      `json:"tokens_change"` // Всегда -стоимость крутки
	Balance      int      `json:"balance"`       // Баланс после крутки
}
