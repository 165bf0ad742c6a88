package model

// Tier is a display label derived from the current balance. It is never
// persisted; callers recompute it on every read so it tracks the live value.
type Tier string

const (
	TierTacoMate     Tier = "Taco Mate"
	TierBurritoBuddy Tier = "Burrito Buddy"
	TierGuacStar     Tier = "Guac Star"
	TierSalsaSupremo Tier = "Salsa Supremo"
	TierFiestaLegend Tier = "Fiesta Legend"
)

// TierFor maps a point balance to the highest tier whose threshold it meets.
func TierFor(points int64) Tier {
	switch {
	case points >= 10000:
		return TierFiestaLegend
	case points >= 5000:
		return TierSalsaSupremo
	case points >= 2500:
		return TierGuacStar
	case points >= 500:
		return TierBurritoBuddy
	default:
		return TierTacoMate
	}
}
