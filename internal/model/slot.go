package model

// Outcome - исход игрового действия
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLose    Outcome = "lose"
	OutcomeJackpot Outcome = "jackpot"
)

// Теги анимаций для клиента
const (
	AnimationWin      = "win"
	AnimationLose     = "lose"
	AnimationJackpot  = "jackpot"
	AnimationForceWin = "force_win"
)

type SlotSpin struct {
	Stake int
}

type SlotResult struct {
	Outcome      Outcome
	TokensChange int
	Balance      int
	Streak       int
	Animation    string
}
