// Package evalcache caches expectation values in a key-value store, keyed by
// a digest of the full evaluation request. Only the scalar expectation is
// cached; a hit does not carry the circuit or counts.
package evalcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/db"
	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
)

const cacheKeyPrefix = "qaoad:eval_cache:"

// store is the consumer interface for the expectation cache.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedEvaluator decorates an Evaluator with a key-value cache.
type CachedEvaluator struct {
	inner      evaluate.Evaluator
	store      store
	kind       domain.BackendKind
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. The backend kind is part of the cache key
// so exact and sampled results never collide. cacheTotal is a counter vec
// with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner evaluate.Evaluator,
	s store,
	kind domain.BackendKind,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedEvaluator {
	return &CachedEvaluator{
		inner:      inner,
		store:      s,
		kind:       kind,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Evaluate returns a cached expectation or calls the inner evaluator.
func (c *CachedEvaluator) Evaluate(ctx context.Context, req evaluate.Request) (evaluate.Evaluation, error) {
	key := c.cacheKey(req)

	if val, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return evaluate.Evaluation{Expectation: val, Cached: true}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Evaluate(ctx, req)
	if err != nil {
		return evaluate.Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}

	c.putToCache(ctx, key, result.Expectation)
	return result, nil
}

func (c *CachedEvaluator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey digests every input that determines the expectation: backend
// kind, shot count, both Hamiltonians, angles and structural options.
func (c *CachedEvaluator) cacheKey(req evaluate.Request) string {
	h := sha256.New()

	fmt.Fprintf(h, "kind=%s;shots=%d;p=%d;n=%d;",
		c.kind, req.Shots, req.Params.Depth(), req.Params.NQubits())

	writeHamiltonian(h, "cost", req.Params.Cost())
	writeHamiltonian(h, "mixer", req.Params.Mixer())

	fmt.Fprintf(h, "betas=%v;gammas=%v;", req.Angles.Betas, req.Angles.Gammas)
	fmt.Fprintf(h, "superposition=%t;", req.Options.InitSuperposition)
	for _, g := range req.Options.Prepend {
		fmt.Fprintf(h, "pre=%s%v%g;", g.Kind, g.Qubits, g.Angle)
	}
	for _, g := range req.Options.Append {
		fmt.Fprintf(h, "post=%s%v%g;", g.Kind, g.Qubits, g.Angle)
	}

	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func writeHamiltonian(h io.Writer, label string, ham domain.Hamiltonian) {
	fmt.Fprintf(h, "%s.const=%g;", label, ham.Constant())
	for _, wt := range ham.Terms() {
		fmt.Fprintf(h, "%s.term=%s%v%g;", label, wt.Term.Operators, wt.Term.Qubits, wt.Weight)
	}
}

func (c *CachedEvaluator) getFromCache(ctx context.Context, key string) (float64, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached expectation", zap.String("key", key), zap.Error(err))
		}
		return 0, false
	}
	if len(data) != 8 {
		c.logger.Warn("Invalid cached expectation length", zap.String("key", key), zap.Int("len", len(data)))
		return 0, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), true
}

func (c *CachedEvaluator) putToCache(ctx context.Context, key string, val float64) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(val))
	if err := c.store.SetWithTTL(ctx, key, buf, c.ttl); err != nil {
		c.logger.Warn("Failed to cache expectation", zap.String("key", key), zap.Error(err))
	}
}
