package scoring

// Rating labels used by every scorer.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingNeedsWork = "Needs Work"
)

// rating maps an integer score in [0,100] onto the shared threshold ladder.
// Boundaries are inclusive: exactly 85 is Excellent.
func rating(score int) string {
	switch {
	case score >= 85:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	case score >= 55:
		return RatingFair
	default:
		return RatingNeedsWork
	}
}

// clamp bounds a score to [0,100].
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
