package converter

import (
	"arcade_backend/internal/api/dto/slot"
	"arcade_backend/internal/model"
)

func ToSlotSpin(req slot.SpinRequest) model.SlotSpin {
	return model.SlotSpin{
		Stake: req.Stake,
	}
}

func ToSlotSpinResponse(res model.SlotResult) slot.SpinResponse {
	return slot.SpinResponse{
		Result:       string(res.Outcome),
		TokensChange: res.TokensChange,
		Balance:      res.Balance,
		Streak:       res.Streak,
		Animation:    res.Animation,
	}
}
