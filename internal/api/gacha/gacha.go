package gacha

import (
	"errors"
	"log"
	"net/http"

	dto "arcade_backend/internal/api/dto/gacha"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/model"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GachaService
}

type Handler struct {
	serv service.GachaService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Pull - POST /gacha/pull
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PullRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Pull(r.Context(), converter.ToGachaPull(payload))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		default:
			log.Println("gacha pull error:", err)
			http.Error(w, "pull failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGachaPullResponse(*result))
}
