package session

import "fmt"

// Remote store path conventions. Paths follow the `collection/id` form; the
// lockdown path has an odd segment count and resolves to a field projection
// inside the global app status document.
func userPath(uid string) string {
	return fmt.Sprintf("users/%s", uid)
}

func publicInfoPath(uid string) string {
	return fmt.Sprintf("userPublicInfo/%s", uid)
}

const (
	hostConfigPath       = "hostConfig/main"
	lockdownPath         = "appStatus/global/lockdown"
	missionConfigsPath   = "missionConfigs"
	blitzDefinitionsPath = "blitzDefinitions"
	otherGamesPath       = "otherGames"
)

func missionsUserPath(uid string) string {
	return fmt.Sprintf("missionsUser/%s/missions", uid)
}

func tournamentResultsPath(uid string) string {
	return fmt.Sprintf("users/%s/tournamentResults", uid)
}

func blitzResultsPath(uid string) string {
	return fmt.Sprintf("users/%s/blitzResults", uid)
}

func depositsPath(uid string) string {
	return fmt.Sprintf("users/%s/deposits", uid)
}
