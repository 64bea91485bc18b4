package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/floats"
)

// semanticMatchThreshold is the best cosine similarity a required skill must
// exceed to earn any credit.
const semanticMatchThreshold = 0.5

// DefaultEmbeddingCacheSize bounds the number of skill vectors kept in memory.
const DefaultEmbeddingCacheSize = 4096

var ErrMalformedEmbedding = errors.New("malformed embedding response")

// Embedder turns texts into vectors, one per input and in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SemanticMatcher scores skills by embedding cosine similarity. Vectors are
// kept in an LRU cache per normalized skill so repeated skills cost one
// embedding call.
type SemanticMatcher struct {
	embedder Embedder
	cache    *lru.Cache[string, []float64]
}

type SemanticOption func(*semanticOptions)

type semanticOptions struct {
	cacheSize int
}

// WithEmbeddingCacheSize caps the vector cache. Non-positive sizes keep the
// default.
func WithEmbeddingCacheSize(n int) SemanticOption {
	return func(o *semanticOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

func NewSemanticMatcher(embedder Embedder, opts ...SemanticOption) *SemanticMatcher {
	o := semanticOptions{cacheSize: DefaultEmbeddingCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	// lru.New only fails on a non-positive size
	cache, _ := lru.New[string, []float64](o.cacheSize)
	return &SemanticMatcher{
		embedder: embedder,
		cache:    cache,
	}
}

// Similarity takes, for every required skill, the best cosine similarity
// against the individual's skills and adds it when above 0.5. The sum is
// divided by the number of required skills and capped at 1.
func (m *SemanticMatcher) Similarity(ctx context.Context, individual, required []string) (float64, error) {
	ind := normalizeSkills(individual)
	req := normalizeSkills(required)
	if len(req) == 0 {
		return 1.0, nil
	}
	if len(ind) == 0 {
		return 0.0, nil
	}

	vectors, err := m.vectors(ctx, append(append([]string{}, ind...), req...))
	if err != nil {
		return 0, err
	}

	var matches float64
	for _, r := range req {
		best := math.Inf(-1)
		for _, i := range ind {
			sim, err := cosine(vectors[i], vectors[r])
			if err != nil {
				return 0, err
			}
			if sim > best {
				best = sim
			}
		}
		if best > semanticMatchThreshold {
			matches += best
		}
	}

	return math.Min(matches/float64(len(req)), 1.0), nil
}

// vectors resolves every skill from the cache and embeds the misses in one
// batch.
func (m *SemanticMatcher) vectors(ctx context.Context, skills []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(skills))
	var missing []string

	for _, s := range skills {
		if _, seen := out[s]; seen {
			continue
		}
		if v, ok := m.cache.Get(s); ok {
			out[s] = v
			continue
		}
		out[s] = nil
		missing = append(missing, s)
	}

	if len(missing) == 0 {
		return out, nil
	}

	embeddings, err := m.embedder.Embed(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("embed skills: %w", err)
	}
	if len(embeddings) != len(missing) {
		return nil, fmt.Errorf("%w: want %d vectors, got %d", ErrMalformedEmbedding, len(missing), len(embeddings))
	}

	converted := make([][]float64, len(missing))
	for i, s := range missing {
		if len(embeddings[i]) == 0 {
			return nil, fmt.Errorf("%w: empty vector for %q", ErrMalformedEmbedding, s)
		}
		v := make([]float64, len(embeddings[i]))
		for k, x := range embeddings[i] {
			v[k] = float64(x)
		}
		converted[i] = v
	}

	for i, s := range missing {
		m.cache.Add(s, converted[i])
		out[s] = converted[i]
	}
	return out, nil
}

func cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: dimension mismatch %d vs %d", ErrMalformedEmbedding, len(a), len(b))
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return floats.Dot(a, b) / (na * nb), nil
}
