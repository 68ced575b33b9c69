package slot

import (
	"errors"
	"log"
	"net/http"

	dto "arcade_backend/internal/api/dto/slot"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/model"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SlotService
}

type Handler struct {
	serv service.SlotService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Spin - POST /slot/spin
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToSlotSpin(payload))
	if err != nil {
		// Доменные ошибки транслируются в статус, остальное - 500
		switch {
		case errors.Is(err, model.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		case errors.Is(err, model.ErrInvalidStake):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Println("slot spin error:", err)
			http.Error(w, "spin failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotSpinResponse(*result))
}
