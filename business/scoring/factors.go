package scoring

import (
	"math"

	"aidMatch/domain"
)

const neutralScore = 0.5

// utilization bands for availability
const (
	lowUtilization  = 0.3
	highUtilization = 0.8
)

// LocationScore is 1 at zero distance and falls linearly to 0 at maxDistance.
// A missing location on either side yields the neutral 0.5.
func LocationScore(a, b *domain.Location, maxDistance float64) float64 {
	if a == nil || b == nil {
		return neutralScore
	}
	if maxDistance <= 0 {
		maxDistance = defaultMaxDistance
	}

	d := math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
	return 1.0 - math.Min(d/maxDistance, 1.0)
}

// AvailabilityScore prefers resources that are neither nearly empty nor nearly
// full. Full or capacity-less resources score 0.
func AvailabilityScore(capacity, occupied int) float64 {
	if capacity <= 0 {
		return 0
	}
	if capacity-occupied <= 0 {
		return 0
	}

	u := float64(occupied) / float64(capacity)
	switch {
	case u < lowUtilization:
		return 0.7 + (u/lowUtilization)*0.3
	case u < highUtilization:
		return 1.0
	default:
		return 1.0 - ((u-highUtilization)/0.2)*0.5
	}
}

// PriorityScore is 1 when the individual's level is supported, 0.5 when the
// resource states no support list, and otherwise loses 0.25 per level of
// distance to the nearest supported level.
func PriorityScore(p domain.Priority, supported []domain.Priority) float64 {
	if len(supported) == 0 {
		return neutralScore
	}

	level := p.Level()
	minDiff := math.MaxInt
	for _, s := range supported {
		diff := level - s.Level()
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			return 1.0
		}
		if diff < minDiff {
			minDiff = diff
		}
	}
	return math.Max(0, 1.0-0.25*float64(minDiff))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
