package wallet

import (
	"log"
	"net/http"

	dto "arcade_backend/internal/api/dto/wallet"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.WalletService
}

type Handler struct {
	serv service.WalletService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Deposit - POST /wallet/deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.serv.Deposit(r.Context(), payload.Amount)
	if err != nil {
		log.Println("deposit error:", err)
		http.Error(w, "deposit failed", http.StatusBadRequest)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*data))
}

// Balance - GET /wallet/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.Balance(r.Context())
	if err != nil {
		log.Println("balance error:", err)
		http.Error(w, "balance failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*data))
}
