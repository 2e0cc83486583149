package grading

// ManualPassPolicy decides whether a manually graded answer counts as
// correct, given the points a grader assigned and the question's maximum.
// This is a product convention, not a derived fact, so it is a named,
// swappable function rather than an inline constant.
type ManualPassPolicy func(points, max float64) bool

// HalfPointsPass is the default policy: correct iff the grader awarded at
// least half of the question's points.
func HalfPointsPass(points, max float64) bool {
	if max <= 0 {
		return points > 0
	}
	return points >= max/2
}

// ClampPoints bounds a manual grade to [0, max].
func ClampPoints(points, max float64) float64 {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}
