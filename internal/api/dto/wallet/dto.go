package wallet

type DepositRequest struct {
	Amount int `json:"amount"` // Сумма пополнения
}

type WalletResponse struct {
	Balance int `json:"balance"` // Текущий баланс
}
