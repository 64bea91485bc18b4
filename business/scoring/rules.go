package scoring

import (
	"context"
	"math"
	"strings"
)

const (
	exactMatchCredit   = 1.0
	partialMatchCredit = 0.8
	synonymMatchCredit = 0.7
)

// skillSynonyms maps a base skill to related terms. A skill belongs to a group
// when it, or any single word of it, equals the base or one of the terms.
var skillSynonyms = map[string][]string{
	"drive":            {"driving", "driver", "can drive", "valid license", "license", "navigation", "delivery"},
	"construction":     {"carpentry", "building", "physical labor", "laborer", "builder"},
	"cook":             {"cooking", "food service", "kitchen", "culinary", "chef"},
	"clean":            {"cleaning", "housekeeping", "janitorial", "maintenance", "janitor"},
	"customer service": {"retail", "sales", "cashier", "service", "customer"},
	"organize":         {"organization", "organizing", "stocking", "inventory"},
	"computer":         {"typing", "data entry", "office", "microsoft", "tech"},
	"warehouse":        {"loading", "unloading", "forklift", "physical labor"},
	"language":         {"languages", "multilingual", "bilingual", "translation"},
}

// RuleMatcher is the dictionary based skill matcher. It never fails.
type RuleMatcher struct {
	groups map[string][]string
}

func NewRuleMatcher() *RuleMatcher {
	groups := make(map[string][]string)
	for base, terms := range skillSynonyms {
		groups[base] = append(groups[base], base)
		for _, t := range terms {
			groups[t] = append(groups[t], base)
		}
	}
	return &RuleMatcher{groups: groups}
}

// Similarity credits 1.0 per exact match. Every remaining (individual,
// required) pair then earns at most one credit: 0.8 when one skill contains
// the other, 0.7 when both fall in a synonym group. A pair that is related
// only through a word inflection ("cooking", "cook") and also shares a
// synonym group takes the synonym credit. The total is divided by the number
// of required skills and capped at 1.
func (m *RuleMatcher) Similarity(_ context.Context, individual, required []string) (float64, error) {
	return m.score(individual, required), nil
}

func (m *RuleMatcher) score(individual, required []string) float64 {
	ind := normalizeSkills(individual)
	req := normalizeSkills(required)
	if len(req) == 0 {
		return 1.0
	}
	if len(ind) == 0 {
		return 0.0
	}

	indSet := make(map[string]struct{}, len(ind))
	for _, s := range ind {
		indSet[s] = struct{}{}
	}
	exact := make(map[string]struct{})
	for _, s := range req {
		if _, ok := indSet[s]; ok {
			exact[s] = struct{}{}
		}
	}

	matches := float64(len(exact)) * exactMatchCredit
	for _, i := range ind {
		if _, ok := exact[i]; ok {
			continue
		}
		for _, r := range req {
			if _, ok := exact[r]; ok {
				continue
			}
			switch {
			case containsWords(i, r) || containsWords(r, i):
				matches += partialMatchCredit
			case m.sharesGroup(i, r):
				matches += synonymMatchCredit
			case strings.Contains(i, r) || strings.Contains(r, i):
				matches += partialMatchCredit
			}
		}
	}

	return math.Min(matches/float64(len(req)), 1.0)
}

// containsWords reports whether needle appears in hay as a contiguous run of
// whole words, so "customer service" contains "service" but "cooking" does not
// contain "cook".
func containsWords(hay, needle string) bool {
	h := strings.Fields(hay)
	n := strings.Fields(needle)
	if len(n) == 0 || len(n) > len(h) {
		return false
	}
outer:
	for start := 0; start+len(n) <= len(h); start++ {
		for k := range n {
			if h[start+k] != n[k] {
				continue outer
			}
		}
		return true
	}
	return false
}

func (m *RuleMatcher) sharesGroup(a, b string) bool {
	ga := m.groupsOf(a)
	if len(ga) == 0 {
		return false
	}
	for base := range m.groupsOf(b) {
		if _, ok := ga[base]; ok {
			return true
		}
	}
	return false
}

func (m *RuleMatcher) groupsOf(skill string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, base := range m.groups[skill] {
		out[base] = struct{}{}
	}
	for _, w := range strings.Fields(skill) {
		for _, base := range m.groups[w] {
			out[base] = struct{}{}
		}
	}
	return out
}
