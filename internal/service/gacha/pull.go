package gacha

import (
	"context"
	"errors"

	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
)

// Максимальная длина истории редкостей пользователя
const historySize = 10

// Pull - выполняет одну или десять круток гачи.
// count >= 10 трактуется как десятикратная крутка со скидкой, любое
// другое значение - одиночная. Стоимость списывается целиком до розыгрыша
func (s *serv) Pull(ctx context.Context, pullReq model.GachaPull) (*model.GachaResult, error) {
	pulls := 1
	cost := s.cfg.SingleCost()
	if pullReq.Count >= 10 {
		pulls = 10
		cost = s.cfg.TenCost()
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var res *model.GachaResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Списание стоимости, fail-fast при нехватке средств
		balance, err := s.balanceRepo.DeductBalance(txCtx, userID, cost)
		if err != nil {
			return err
		}

		// Счетчик круток и история редкостей
		counter, err := s.stateRepo.GetGachaCount(txCtx, userID)
		if err != nil {
			return err
		}
		history, err := s.stateRepo.GetGachaHistory(txCtx, userID)
		if err != nil {
			return err
		}

		results := make([]model.Rarity, 0, pulls)
		for i := 0; i < pulls; i++ {
			counter++

			tier := s.draw(history)

			// Pity: при достижении порога тир ниже гарантированного
			// повышается принудительно, и счетчик сбрасывается.
			// Естественный высокий тир счетчик не сбрасывает
			if counter >= s.cfg.PityThreshold() && s.rarityRank[tier] < s.rarityRank[s.cfg.PityRarity()] {
				tier = s.cfg.PityRarity()
				counter = 0
			}

			// Конечный пул наград: исчерпанный тир деградирует до низшего
			tier = s.takeFromPool(tier)

			// История хранится от свежей к старой и ограничена сверху
			history = append([]model.Rarity{tier}, history...)
			if len(history) > historySize {
				history = history[:historySize]
			}

			results = append(results, tier)
		}

		// Сохраняем счетчик и историю, пишем аудит
		if err := s.stateRepo.SetGachaCount(txCtx, userID, counter); err != nil {
			return err
		}
		if err := s.stateRepo.SetGachaHistory(txCtx, userID, history); err != nil {
			return err
		}
		s.stateRepo.RecordAction(txCtx, userID, model.ActionGachaPull, -cost)

		res = &model.GachaResult{
			Results:      results,
			TokensChange: -cost,
			Balance:      balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// draw - один взвешенный розыгрыш по таблице редкостей.
// Вклад тира, присутствующего в недавней истории, уменьшается вдвое
// (анти-дубликаты). Перенормировка при этом не выполняется, поэтому
// суммарная масса может стать меньше 1 - непрошедший порог розыгрыш
// уходит в низший тир
func (s *serv) draw(history []model.Rarity) model.Rarity {
	seen := make(map[model.Rarity]struct{}, len(history))
	for _, h := range history {
		seen[h] = struct{}{}
	}

	r := s.rand.Float64()

	cumulative := 0.0
	for _, tier := range s.cfg.RarityTable() {
		prob := tier.Prob
		if _, ok := seen[tier.Rarity]; ok {
			prob /= 2
		}
		cumulative += prob
		if r < cumulative {
			return tier.Rarity
		}
	}

	// Защита от недобора массы и от погрешностей округления
	return s.lowest
}

// takeFromPool - списывает награду из конечного пула.
// Тир без записи в пуле бесконечен; исчерпанный тир деградирует до низшего
func (s *serv) takeFromPool(tier model.Rarity) model.Rarity {
	if s.pool == nil {
		return tier
	}

	s.poolMtx.Lock()
	defer s.poolMtx.Unlock()

	remaining, tracked := s.pool[tier]
	if !tracked {
		return tier
	}
	if remaining <= 0 {
		return s.lowest
	}

	s.pool[tier] = remaining - 1
	return tier
}
