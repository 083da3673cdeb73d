// Package domain holds the entity model for the signed-in player's session.
package domain

import "time"

// KYCStatus tracks the player's identity verification progress.
type KYCStatus string

const (
	KYCNotStarted KYCStatus = "not_started"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

// User represents the signed-in player. At most one User is resident in the
// session at a time; it is always replaced wholesale, never mutated in place.
type User struct {
	ID                    string            `json:"id"`
	Balance               int64             `json:"balance"`
	WithdrawableBalance   int64             `json:"withdrawableBalance"`
	WithdrawalLimit       int64             `json:"withdrawalLimit"`
	UnclaimedBalance      int64             `json:"unclaimedBalance"`
	TokenBalance          int64             `json:"tokenBalance"`
	Banned                bool              `json:"banned"`
	KYCStatus             KYCStatus         `json:"kycStatus"`
	RewardMarker          string            `json:"rewardMarker"`
	ShowOnboarding        bool              `json:"showOnboarding"`
	TutorialDone          bool              `json:"tutorialDone"`
	LocationCheckDisabled bool              `json:"locationCheckDisabled"`
	PushTokens            map[string]string `json:"pushTokens"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

// UserPublicInfo is the presentation-facing profile. The signed-in player's
// copy is resident session state; copies fetched for opponents are transient.
type UserPublicInfo struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Username    string    `json:"username"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LockdownStatus mirrors the remote lockdown flag for the current region.
type LockdownStatus struct {
	Active  bool   `json:"active"`
	Message string `json:"message"`
}

// HostConfig is process-wide configuration pushed by the backend. Singleton,
// replaced wholesale on every fetch or push.
type HostConfig struct {
	MinWithdrawal           int64 `json:"minWithdrawal"`
	WeeklyWithdrawableLimit int64 `json:"weeklyWithdrawableLimit"`
}
