// Package evaluate is the core pipeline usecase: compile a circuit for one
// angle set, execute it on the configured backend and reduce the result to a
// cost expectation value.
package evaluate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/metrics"
	"github.com/qirion-cloud/qaoad/internal/usecase/compile"
	"github.com/qirion-cloud/qaoad/internal/usecase/estimate"
)

// Request is one evaluation: a parameterized circuit plus concrete angles.
type Request struct {
	Params  domain.CircuitParams
	Angles  domain.Angles
	Options compile.Options
	Shots   int
}

// Evaluation is the result of one evaluation. Counts is nil on the exact
// backend. A cache hit carries only the expectation.
type Evaluation struct {
	Expectation float64
	Circuit     circuit.Circuit
	Counts      domain.Counts
	Shots       int
	Cached      bool
}

// Service implements Evaluator against a concrete backend.
type Service struct {
	backend Executor
	logger  *zap.Logger
}

// New creates an evaluation service.
func New(backend Executor, logger *zap.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Evaluate compiles, executes and estimates a single angle set.
func (s *Service) Evaluate(ctx context.Context, req Request) (Evaluation, error) {
	kind := string(s.backend.Kind())
	start := time.Now()

	circ, err := compile.Compile(req.Params, req.Angles, req.Options)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues(kind, "error").Inc()
		return Evaluation{}, fmt.Errorf("compile circuit: %w", err)
	}

	res, err := s.backend.Execute(ctx, circ, req.Shots)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues(kind, "error").Inc()
		return Evaluation{}, fmt.Errorf("execute circuit: %w", err)
	}

	expectation, err := estimate.FromResult(req.Params.Cost(), res)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues(kind, "error").Inc()
		return Evaluation{}, fmt.Errorf("estimate expectation: %w", err)
	}

	metrics.EvaluationsTotal.WithLabelValues(kind, "success").Inc()
	metrics.EvaluationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	s.logger.Debug("evaluation completed",
		zap.String("backend", kind),
		zap.Int("depth", req.Params.Depth()),
		zap.Int("n_qubits", req.Params.NQubits()),
		zap.Float64("expectation", expectation))

	return Evaluation{
		Expectation: expectation,
		Circuit:     circ,
		Counts:      res.Counts,
		Shots:       res.Shots,
	}, nil
}
