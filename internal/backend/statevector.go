// Package backend provides the execution adapters behind the evaluation
// pipeline: an exact state-vector simulator, a shot-based local sampler and a
// shot-based remote device. All three satisfy domain.Backend.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/simulator"
)

// Statevector executes circuits exactly and returns the full amplitude
// vector. The shots argument is ignored.
type Statevector struct {
	logger *zap.Logger
}

// NewStatevector creates the exact simulation backend.
func NewStatevector(logger *zap.Logger) *Statevector {
	return &Statevector{logger: logger}
}

// Kind implements domain.Backend.
func (b *Statevector) Kind() domain.BackendKind {
	return domain.BackendStatevector
}

// Execute implements domain.Backend.
func (b *Statevector) Execute(ctx context.Context, circ circuit.Circuit, shots int) (domain.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("statevector execution: %w", err)
	}

	state, err := simulator.Run(circ)
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("statevector execution: %w", err)
	}

	b.logger.Debug("statevector execution completed",
		zap.Int("n_qubits", circ.NQubits),
		zap.Int("gates", len(circ.Gates)))

	return domain.ExecutionResult{
		Kind:       domain.ResultStateVector,
		Amplitudes: state.Amplitudes,
	}, nil
}
