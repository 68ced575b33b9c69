package converter

import (
	"arcade_backend/internal/api/dto/roulette"
	"arcade_backend/internal/model"
)

func ToRouletteSpin(req roulette.SpinRequest) model.RouletteSpin {
	return model.RouletteSpin{
		Bet:     req.Bet,
		BetType: model.BetType(req.BetType),
		Value:   req.Value,
	}
}

func ToRouletteSpinResponse(res model.RouletteResult) roulette.SpinResponse {
	return roulette.SpinResponse{
		WinningNumber: res.WinningNumber,
		Result:        string(res.Outcome),
		TokensChange:  res.TokensChange,
		Balance:       res.Balance,
		Animation:     res.Animation,
	}
}
