package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Vector is a unit-normalized embedding. A Vector with no values is the
// zero-information vector produced by the empty normalized form; scorers
// special-case it instead of treating it as dissimilar. Values are shared
// out of the cache and must never be mutated.
type Vector struct {
	Values []float32
}

func (v Vector) IsZero() bool {
	return len(v.Values) == 0
}

// newUnitVector scales raw backend output to unit length so cosine similarity
// reduces to a dot product. A raw all-zero vector collapses to the
// zero-information vector.
func newUnitVector(raw []float32) Vector {
	var norm float64
	for _, x := range raw {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return Vector{}
	}

	values := make([]float32, len(raw))
	for i, x := range raw {
		values[i] = float32(float64(x) / norm)
	}

	return Vector{Values: values}
}

type EmbeddingEncoder interface {
	Encode(ctx context.Context, normalized string) (Vector, error)
}

// embeddingEncoder fronts the embedding backend with a process-wide cache
// keyed by the exact normalized input string. Entries live until the process
// exits; the per-call corpus is small and bounded, so there is no eviction.
type embeddingEncoder struct {
	backend    GeminiService
	maxRetries int
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[string]Vector
	group singleflight.Group
}

func NewEmbeddingEncoder(backend GeminiService, maxRetries int, logger *zap.Logger) EmbeddingEncoder {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &embeddingEncoder{
		backend:    backend,
		maxRetries: maxRetries,
		logger:     logger,
		cache:      make(map[string]Vector),
	}
}

// Encode implements EmbeddingEncoder. Concurrent calls for the same uncached
// text are collapsed by singleflight: one caller computes and inserts, the
// rest wait and observe the same vector. Backend failure surfaces as
// ErrEncodingUnavailable rather than a defaulted score.
func (e *embeddingEncoder) Encode(ctx context.Context, normalized string) (Vector, error) {
	if normalized == "" {
		return Vector{}, nil
	}

	e.mu.RLock()
	vec, ok := e.cache[normalized]
	e.mu.RUnlock()
	if ok {
		return vec, nil
	}

	result, err, _ := e.group.Do(normalized, func() (interface{}, error) {
		// A previous winner may have filled the entry while we queued.
		e.mu.RLock()
		cached, ok := e.cache[normalized]
		e.mu.RUnlock()
		if ok {
			return cached, nil
		}

		raw, err := e.backend.GenerateEmbeddingWithRetry(ctx, normalized, e.maxRetries)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEncodingUnavailable, err)
		}

		vec := newUnitVector(raw)
		e.mu.Lock()
		e.cache[normalized] = vec
		size := len(e.cache)
		e.mu.Unlock()

		e.logger.Debug("embedding cached",
			zap.Int("dimensions", len(vec.Values)),
			zap.Int("cache_size", size),
		)

		return vec, nil
	})
	if err != nil {
		return Vector{}, err
	}

	return result.(Vector), nil
}

// cacheSize reports the number of distinct cached entries.
func (e *embeddingEncoder) cacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
