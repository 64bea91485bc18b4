package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityLevels = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// Level returns the ordinal level of p. Unknown or empty priorities are
// treated as medium.
func (p Priority) Level() int {
	if lvl, ok := priorityLevels[Priority(strings.ToLower(strings.TrimSpace(string(p))))]; ok {
		return lvl
	}
	return priorityLevels[PriorityMedium]
}

// DefaultPrioritySupport is applied by the HTTP layer when a resource omits
// its priority_support list.
func DefaultPrioritySupport() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var ErrInvalidLocation = errors.New("location must be [lat, lng] or {\"lat\", \"lng\"}")

// UnmarshalJSON accepts both a [lat, lng] pair and a {"lat", "lng"} object.
func (l *Location) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return ErrInvalidLocation
		}
		l.Lat, l.Lng = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Lat == nil || obj.Lng == nil {
		return ErrInvalidLocation
	}
	l.Lat, l.Lng = *obj.Lat, *obj.Lng
	return nil
}

// Individual is the person a recommendation is made for.
type Individual struct {
	ID        string    `json:"id"`
	Skills    []string  `json:"skills"`
	Location  *Location `json:"location,omitempty"`
	Priority  Priority  `json:"priority"`
	Age       int       `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Education string    `json:"education,omitempty"`
}
