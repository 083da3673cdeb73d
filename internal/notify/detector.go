package notify

import "github.com/quickplay-games/sessiond/internal/domain"

// DiffUser compares the outgoing and incoming User and returns the change
// events the replacement warrants, in field order. A nil old value marks the
// first assignment: the diff runs against the zero value, so every populated
// facet registers as changed.
func DiffUser(old, new *domain.User) []Event {
	if new == nil {
		return nil
	}

	prev := domain.User{}
	if old != nil {
		prev = *old
	}

	var events []Event

	if prev.Balance != new.Balance ||
		prev.WithdrawableBalance != new.WithdrawableBalance ||
		prev.WithdrawalLimit != new.WithdrawalLimit {
		events = append(events, Event{
			Name:    EventBalanceChanged,
			Payload: BalancePayload{Balance: new.Balance},
		})
	}

	if prev.RewardMarker != new.RewardMarker {
		events = append(events, Event{Name: EventRewardMarkerChanged})
		if new.UnclaimedBalance != 0 {
			events = append(events, Event{Name: EventUnclaimedBalanceClaimable})
		}
	}

	if new.ShowOnboarding && !prev.ShowOnboarding {
		events = append(events, Event{Name: EventFirstLoginSequenceShouldRun})
	}

	if prev.Banned != new.Banned {
		events = append(events, Event{Name: EventLockdownChanged})
	}

	if prev.KYCStatus != new.KYCStatus {
		events = append(events, Event{Name: EventKycStatusChanged})
	}

	if prev.TokenBalance != new.TokenBalance {
		events = append(events, Event{
			Name:    EventTokenBalanceChanged,
			Payload: TokenBalancePayload{TokenBalance: new.TokenBalance},
		})
	}

	if prev.LocationCheckDisabled != new.LocationCheckDisabled {
		events = append(events, Event{Name: EventLocationCheckPolicyChanged})
	}

	return events
}

// DiffHostConfig emits HostConfigChanged only when a limit actually moved.
func DiffHostConfig(old, new *domain.HostConfig) []Event {
	if new == nil {
		return nil
	}

	prev := domain.HostConfig{}
	if old != nil {
		prev = *old
	}

	if prev.MinWithdrawal == new.MinWithdrawal &&
		prev.WeeklyWithdrawableLimit == new.WeeklyWithdrawableLimit {
		return nil
	}

	return []Event{{Name: EventHostConfigChanged}}
}

// DiffPublicInfo emits ProfileChanged unconditionally: the whole object is
// presentation data, so every replacement repaints.
func DiffPublicInfo(old, new *domain.UserPublicInfo) []Event {
	if new == nil {
		return nil
	}

	return []Event{{Name: EventProfileChanged}}
}

// DiffBlitzDefinitions emits BlitzDefinitionsFetched only on the transition
// from an empty list to a populated one, not on every refresh.
func DiffBlitzDefinitions(oldCount int, new []domain.BlitzDefinition) []Event {
	if oldCount == 0 && len(new) > 0 {
		return []Event{{Name: EventBlitzDefinitionsFetched}}
	}

	return nil
}
