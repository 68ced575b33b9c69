package roulette

import (
	"context"
	"errors"
	"math"
	"strconv"

	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
)

// Количество секторов колеса: 0..36
const wheelSize = 37

// Spin - один спин рулетки.
// Ставка ограничивается диапазоном конфигурации, тип и значение ставки
// проверяются до списания. Ноль не считается ни цветом, ни четным числом
func (s *serv) Spin(ctx context.Context, spinReq model.RouletteSpin) (*model.RouletteResult, error) {
	// Валидация типа и значения ставки до любых списаний
	if err := validateBet(spinReq); err != nil {
		return nil, err
	}

	// Ставка зажимается в допустимый диапазон, а не отклоняется
	bet := spinReq.Bet
	if bet < s.cfg.MinBet() {
		bet = s.cfg.MinBet()
	}
	if bet > s.cfg.MaxBet() {
		bet = s.cfg.MaxBet()
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var res *model.RouletteResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Списание ставки, fail-fast при нехватке средств
		balance, err := s.balanceRepo.DeductBalance(txCtx, userID, bet)
		if err != nil {
			return err
		}

		// House edge зависит от сегмента пользователя
		edge := s.policy.HouseEdge(s.stateRepo.GetUserSegment(txCtx, userID))

		// Розыгрыш выигрышного числа
		winningNumber := s.rand.IntN(wheelSize)

		payout := resolvePayout(spinReq, bet, winningNumber, edge)

		outcome := model.OutcomeLose
		animation := model.AnimationLose
		if payout > 0 {
			balance, err = s.balanceRepo.AddBalance(txCtx, userID, payout)
			if err != nil {
				return err
			}
			outcome = model.OutcomeWin
			animation = model.AnimationWin
		}

		s.stateRepo.RecordAction(txCtx, userID, model.ActionRouletteSpin, -bet)

		res = &model.RouletteResult{
			WinningNumber: winningNumber,
			Outcome:       outcome,
			TokensChange:  payout - bet,
			Balance:       balance,
			Animation:     animation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// validateBet - проверяет осмысленность типа и значения ставки
func validateBet(spinReq model.RouletteSpin) error {
	switch spinReq.BetType {
	case model.BetNumber:
		n, err := strconv.Atoi(spinReq.Value)
		if err != nil || n < 0 || n >= wheelSize {
			return model.ErrInvalidBet
		}
	case model.BetColor:
		if spinReq.Value != model.BetValueRed && spinReq.Value != model.BetValueBlack {
			return model.ErrInvalidBet
		}
	case model.BetOddEven:
		if spinReq.Value != model.BetValueOdd && spinReq.Value != model.BetValueEven {
			return model.ErrInvalidBet
		}
	default:
		return model.ErrInvalidBet
	}
	return nil
}

// resolvePayout - выплата по ставке для выпавшего числа.
// Красные - нечетные 1..35, черные - четные 2..36, ноль не относится
// ни к цвету, ни к четности
func resolvePayout(spinReq model.RouletteSpin, bet, winningNumber int, edge float64) int {
	switch spinReq.BetType {
	case model.BetNumber:
		n, _ := strconv.Atoi(spinReq.Value)
		if n == winningNumber {
			return int(math.Floor(float64(bet) * 35 * (1 - edge)))
		}
	case model.BetColor:
		if winningNumber == 0 {
			return 0
		}
		color := model.BetValueBlack
		if winningNumber%2 == 1 {
			color = model.BetValueRed
		}
		if color == spinReq.Value {
			return int(math.Floor(float64(bet) * (1 - edge)))
		}
	case model.BetOddEven:
		if winningNumber == 0 {
			return 0
		}
		parity := model.BetValueEven
		if winningNumber%2 == 1 {
			parity = model.BetValueOdd
		}
		if parity == spinReq.Value {
			return int(math.Floor(float64(bet) * (1 - edge)))
		}
	}
	return 0
}
