package exam

// AggregateScore recomputes an attempt's score and percentage from scratch
// over its answers. Not incremental: after any grading change the whole sum
// is rebuilt so revised points_awarded values are always reflected.
func AggregateScore(answers []AttemptAnswer, totalPoints float64) (score, percentage float64) {
	for _, a := range answers {
		score += a.PointsAwarded
	}
	if totalPoints > 0 {
		percentage = 100 * score / totalPoints
	}
	return score, percentage
}

// EffectiveTotalPoints prefers the denormalized exam total but re-derives it
// from the question snapshot when the two disagree, since the authoring side
// may have let the stored value go stale.
func EffectiveTotalPoints(e Exam) float64 {
	derived := e.QuestionPointsSum()
	if derived != e.TotalPoints {
		return derived
	}
	return e.TotalPoints
}
