package domain

// BlitzDataPoint is one score-to-multiplier calibration sample.
type BlitzDataPoint struct {
	Score      float64 `json:"score"`
	Multiplier float64 `json:"multiplier"`
}

// BlitzDefinition is a server-defined blitz entry tier: the buy-in and the
// calibration curve used to map scores to payouts.
type BlitzDefinition struct {
	ID         string           `json:"id"`
	BuyIn      int64            `json:"buyIn"`
	Archived   bool             `json:"archived"`
	DataPoints []BlitzDataPoint `json:"dataPoints"`
}

// BlitzSeedCycleData is the locally persisted counter that rotates the
// deterministic seed window. It is never synchronized with the remote store.
type BlitzSeedCycleData struct {
	GameNumber int64 `json:"gameNumber"`
}

// OtherGame is a cross-promoted title shown on the games carousel.
type OtherGame struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconURL  string `json:"iconUrl"`
	StoreURL string `json:"storeUrl"`
	Archived bool   `json:"archived"`
}
