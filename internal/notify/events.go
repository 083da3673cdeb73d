// Package notify computes field-level diffs on entity replacement and fans the
// resulting change events out to the presentation layer.
package notify

import "github.com/quickplay-games/sessiond/internal/domain"

// Name identifies a change event. The set is closed; it is the only contract
// exposed to the screen layer.
type Name string

const (
	EventBalanceChanged              Name = "BalanceChanged"
	EventTokenBalanceChanged         Name = "TokenBalanceChanged"
	EventRewardMarkerChanged         Name = "RewardMarkerChanged"
	EventUnclaimedBalanceClaimable   Name = "UnclaimedBalanceClaimable"
	EventFirstLoginSequenceShouldRun Name = "FirstLoginSequenceShouldRun"
	EventLockdownChanged             Name = "LockdownChanged"
	EventKycStatusChanged            Name = "KycStatusChanged"
	EventLocationCheckPolicyChanged  Name = "LocationCheckPolicyChanged"
	EventHostConfigChanged           Name = "HostConfigChanged"
	EventProfileChanged              Name = "ProfileChanged"
	EventMissionFinished             Name = "MissionFinished"
	EventHistoryUpdated              Name = "HistoryUpdated"
	EventBlitzDefinitionsFetched     Name = "BlitzDefinitionsFetched"
)

// Event is one emitted change. Payload holds the event-specific value, if any.
type Event struct {
	Name    Name
	Payload any
}

// BalancePayload accompanies EventBalanceChanged.
type BalancePayload struct {
	Balance int64
}

// TokenBalancePayload accompanies EventTokenBalanceChanged.
type TokenBalancePayload struct {
	TokenBalance int64
}

// MissionFinishedPayload accompanies EventMissionFinished.
type MissionFinishedPayload struct {
	Model domain.MissionModel
}
