package converter

import (
	"arcade_backend/internal/api/dto/gacha"
	"arcade_backend/internal/model"
)

func ToGachaPull(req gacha.PullRequest) model.GachaPull {
	return model.GachaPull{
		Count: req.Count,
	}
}

func ToGachaPullResponse(res model.GachaResult) gacha.PullResponse {
	results := make([]string, len(res.Results))
	for i, r := range res.Results {
		results[i] = string(r)
	}

	return gacha.PullResponse{
		Results:      results,
		TokensChange: res.TokensChange,
		Balance:      res.Balance,
	}
}
