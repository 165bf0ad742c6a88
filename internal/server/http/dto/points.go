package dto

// ProfileResponse describes a user's balance and tier.
type ProfileResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
	Tier   string `json:"tier"`
}

// BalanceResponse carries the current point balance.
type BalanceResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

// AdjustRequest describes a staff grant or deduct payload.
type AdjustRequest struct {
	Actor  string `json:"actor"`
	Target string `json:"target"`
	Amount int64  `json:"amount"`
}

// AdjustResponse reports the balance after a grant or deduct.
type AdjustResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

// DailyResponse reports a successful daily claim.
type DailyResponse struct {
	Awarded int64 `json:"awarded"`
	Points  int64 `json:"points"`
}

// LeaderboardEntryResponse is one row of the leaderboard listing.
type LeaderboardEntryResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

// ErrorResponse carries a machine-readable error label.
type ErrorResponse struct {
	Error string `json:"error"`
}
