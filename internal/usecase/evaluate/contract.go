package evaluate

import (
	"context"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
)

// Executor runs compiled circuits on some backend.
type Executor interface {
	Kind() domain.BackendKind
	Execute(ctx context.Context, circ circuit.Circuit, shots int) (domain.ExecutionResult, error)
}

// Evaluator produces an expectation value for one angle set. The expectation
// cache decorates this interface.
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (Evaluation, error)
}
