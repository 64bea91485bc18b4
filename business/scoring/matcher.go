package scoring

import (
	"context"
	"strings"
)

// SkillMatcher scores how well individual skills cover required skills, in
// [0,1]. Implementations may fail; the Scorer then degrades to RuleMatcher.
type SkillMatcher interface {
	Similarity(ctx context.Context, individual, required []string) (float64, error)
}

// normalizeSkills lower-cases, trims and de-duplicates skills, dropping blanks
// and keeping first-seen order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := strings.ToLower(strings.TrimSpace(s))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
