package model

import "errors"

// Доменные ошибки движков. Возвращаются вызывающему слою для трансляции
// в ответ пользователю. Инфраструктурные сбои (недоступный кэш) до сюда
// не доходят - они гасятся внутри репозиториев
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidStake      = errors.New("invalid stake")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrConfigParse       = errors.New("config parse error")
)
