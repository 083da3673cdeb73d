package domain

import "time"

// GameKind distinguishes which result stream a history entry came from.
type GameKind string

const (
	GameKindTournament GameKind = "tournament"
	GameKindBlitz      GameKind = "blitz"
)

// GameHistoryModel is one finished game. Entries from the tournament and blitz
// streams share an id space; later arrivals of the same id replace earlier ones.
type GameHistoryModel struct {
	ID         string    `json:"id"`
	Kind       GameKind  `json:"kind"`
	Title      string    `json:"title"`
	BuyIn      int64     `json:"buyIn"`
	Prize      int64     `json:"prize"`
	Score      float64   `json:"score"`
	Multiplier float64   `json:"multiplier"`
	OccurredAt time.Time `json:"occurredAt"`
}

// DepositType tags a ledger entry.
type DepositType string

const (
	DepositTypeDeposit         DepositType = "deposit"
	DepositTypeHotStreak       DepositType = "hotStreak"
	DepositTypeAccountCreation DepositType = "accountCreation"
	DepositTypeMissionFinish   DepositType = "missionFinish"
	DepositTypeReferral        DepositType = "referral"
	DepositTypeNewGameBonus    DepositType = "newGameBonus"
	DepositTypeWithdrawal      DepositType = "withdrawal"
	DepositTypeAdjustment      DepositType = "adjustment"
)

// DepositHistoryModel is one ledger entry.
type DepositHistoryModel struct {
	ID        string      `json:"id"`
	Type      DepositType `json:"type"`
	Amount    int64       `json:"amount"`
	CreatedAt time.Time   `json:"createdAt"`
}
