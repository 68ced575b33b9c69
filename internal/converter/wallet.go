package converter

import (
	"arcade_backend/internal/api/dto/wallet"
	"arcade_backend/internal/model"
)

func ToWalletResponse(data model.WalletData) wallet.WalletResponse {
	return wallet.WalletResponse{
		Balance: data.Balance,
	}
}
