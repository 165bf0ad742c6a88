package model

// Account keeps the loyalty state of a single user. LastDaily is the unix
// millisecond timestamp of the last successful daily claim, zero when the
// user has never claimed. The zero value matches the persisted shape of a
// freshly created account.
type Account struct {
	Points    int64 `json:"points"`
	LastDaily int64 `json:"lastDaily,omitempty"`
}

// Profile is the rendered view of an account: live balance plus derived tier.
type Profile struct {
	Points int64
	Tier   Tier
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UserID string
	Points int64
}
