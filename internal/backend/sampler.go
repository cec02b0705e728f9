package backend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/metrics"
	"github.com/qirion-cloud/qaoad/internal/simulator"
)

// Sampler simulates the circuit exactly, then draws a finite number of
// measurement shots from the resulting distribution. A fixed seed makes the
// sampled counts reproducible across runs.
type Sampler struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSampler creates the shot-based local backend with a seeded RNG.
func NewSampler(seed int64, logger *zap.Logger) *Sampler {
	return &Sampler{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Kind implements domain.Backend.
func (b *Sampler) Kind() domain.BackendKind {
	return domain.BackendSamplerLocal
}

// Execute implements domain.Backend. Shots must be positive.
func (b *Sampler) Execute(ctx context.Context, circ circuit.Circuit, shots int) (domain.ExecutionResult, error) {
	if shots <= 0 {
		return domain.ExecutionResult{}, domain.NewValidationError("shot count must be positive, got %d", shots)
	}
	if err := ctx.Err(); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("sampler execution: %w", err)
	}

	state, err := simulator.Run(circ)
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("sampler execution: %w", err)
	}

	// rand.Rand is not safe for concurrent use; sweeps execute in parallel.
	b.mu.Lock()
	counts := simulator.Sample(state, shots, b.rng)
	b.mu.Unlock()

	metrics.ShotsTotal.WithLabelValues(string(domain.BackendSamplerLocal)).Add(float64(shots))

	b.logger.Debug("sampler execution completed",
		zap.Int("n_qubits", circ.NQubits),
		zap.Int("shots", shots),
		zap.Int("outcomes", len(counts)))

	return domain.ExecutionResult{
		Kind:   domain.ResultCounts,
		Counts: counts,
		Shots:  shots,
	}, nil
}
