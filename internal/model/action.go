package model

import "time"

// Типы действий для аудита
const (
	ActionSlotSpin     = "SLOT_SPIN"
	ActionRouletteSpin = "ROULETTE_SPIN"
	ActionGachaPull    = "GACHA_PULL"
	ActionDeposit      = "DEPOSIT"
)

// Action - запись аудита об игровом действии пользователя
type Action struct {
	UserID     int       `json:"user_id"`
	ActionType string    `json:"action_type"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}
