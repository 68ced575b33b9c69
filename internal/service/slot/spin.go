package slot

import (
	"context"
	"errors"
	"math"

	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
)

// Spin - выполняет один спин слота.
// Порядок строго фиксирован: списание ставки (fail-fast при нехватке
// средств), розыгрыш исхода, начисление награды, сохранение стрика.
// При ошибке списания никакое другое состояние не трогается
func (s *serv) Spin(ctx context.Context, spinReq model.SlotSpin) (*model.SlotResult, error) {
	// Валидация ставки до любых списаний
	stake := spinReq.Stake
	if stake == 0 {
		stake = s.cfg.Stake()
	}
	if stake < 0 {
		return nil, model.ErrInvalidStake
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	// Сериализуем все мутации состояния этого пользователя
	unlock := s.locks.Lock(userID)
	defer unlock()

	var res *model.SlotResult

	// Транзакция вокруг списания и начисления
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Списание ставки. При нехватке средств выходим сразу,
		// стрик и история не изменяются
		balance, err := s.balanceRepo.DeductBalance(txCtx, userID, stake)
		if err != nil {
			return err
		}

		// Сегмент и текущий стрик проигрышей
		seg := s.stateRepo.GetUserSegment(txCtx, userID)
		streak, err := s.stateRepo.GetStreak(txCtx, userID)
		if err != nil {
			return err
		}

		// Розыгрыш исхода
		outcome, reward, newStreak, animation := s.resolve(seg, streak)

		// Начисление награды
		if reward > 0 {
			balance, err = s.balanceRepo.AddBalance(txCtx, userID, reward)
			if err != nil {
				return err
			}
		}

		// Сохраняем стрик и пишем аудит
		if err := s.stateRepo.SetStreak(txCtx, userID, newStreak); err != nil {
			return err
		}
		s.stateRepo.RecordAction(txCtx, userID, model.ActionSlotSpin, -stake)

		res = &model.SlotResult{
			Outcome:      outcome,
			TokensChange: reward - stake,
			Balance:      balance,
			Streak:       newStreak,
			Animation:    animation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// resolve - разыгрывает исход спина при текущем сегменте и стрике.
// Возвращает исход, награду, новый стрик и тег анимации
func (s *serv) resolve(seg model.Segment, streak int) (model.Outcome, int, int, string) {
	// Принудительный выигрыш: при достижении порога стрика исход
	// фиксирован и случайный розыгрыш не выполняется
	if streak >= s.cfg.ForcedWinStreak() {
		return model.OutcomeWin, s.cfg.WinReward(), 0, model.AnimationForceWin
	}

	// Вероятность выигрыша растет со стриком (с ограничением сверху)
	// и корректируется сегментом
	winProb := s.cfg.BaseWinProb() +
		math.Min(float64(streak)*s.cfg.StreakBonusStep(), s.cfg.StreakBonusCap()) +
		s.policy.WinProbAdjust(seg)

	// Вероятность джекпота фиксированная, сегментом не корректируется
	jackpotProb := s.cfg.JackpotProb()

	r := s.rand.Float64()
	switch {
	case r < jackpotProb:
		return model.OutcomeJackpot, s.cfg.JackpotReward(), 0, model.AnimationJackpot
	case r < jackpotProb+winProb:
		return model.OutcomeWin, s.cfg.WinReward(), 0, model.AnimationWin
	default:
		return model.OutcomeLose, 0, streak + 1, model.AnimationLose
	}
}
