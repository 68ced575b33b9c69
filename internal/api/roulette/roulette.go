package roulette

import (
	"errors"
	"log"
	"net/http"

	dto "arcade_backend/internal/api/dto/roulette"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/model"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.RouletteService
}

type Handler struct {
	serv service.RouletteService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Spin - POST /roulette/spin
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToRouletteSpin(payload))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		case errors.Is(err, model.ErrInvalidBet):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Println("roulette spin error:", err)
			http.Error(w, "spin failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRouletteSpinResponse(*result))
}
