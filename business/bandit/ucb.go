package bandit

import "math"

// added to the count so a zero count can never divide by zero
const ucbTinyEpsilon = 1e-8

// unexplored arms get a flat bonus instead of an infinite one
const unexploredBonus = 1.0

// ucbBonus = sqrt(2 ln(total+1) / count)
func ucbBonus(count, total int) float64 {
	if count == 0 {
		return unexploredBonus
	}
	return math.Sqrt(2 * math.Log(float64(total)+1) / (float64(count) + ucbTinyEpsilon))
}
