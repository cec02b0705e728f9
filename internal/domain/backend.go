package domain

import (
	"context"

	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
)

// BackendKind identifies one of the three supported execution variants.
type BackendKind string

// Backend variant constants. The set is closed: new execution modes are added
// as new Backend implementations, not by further string branching.
const (
	BackendStatevector   BackendKind = "statevector"
	BackendSamplerLocal  BackendKind = "sampler_local"
	BackendSamplerRemote BackendKind = "sampler_remote"
)

// ResultKind tags which execution path produced an ExecutionResult.
type ResultKind string

// Result kind constants.
const (
	ResultStateVector ResultKind = "statevector"
	ResultCounts      ResultKind = "counts"
)

// Counts maps measured bitstrings to occurrence counts. The leftmost character
// of a bitstring is the highest qubit index.
type Counts map[string]int

// TotalShots returns the sum of all occurrence counts.
func (c Counts) TotalShots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// ExecutionResult is the raw outcome of one circuit execution: either a full
// complex amplitude vector or a shot-count distribution, never both.
type ExecutionResult struct {
	Kind       ResultKind
	Amplitudes []complex128
	Counts     Counts
	Shots      int
}

// Backend executes compiled circuits. Implementations hold immutable
// connection state established at construction and are safe for concurrent
// use. Execute blocks until the full result is available; callers needing
// bounded latency wrap the context with their own timeout.
type Backend interface {
	Kind() BackendKind
	Execute(ctx context.Context, c circuit.Circuit, shots int) (ExecutionResult, error)
}

// DeviceDescriptor identifies a remote execution target. All fields are opaque
// strings; validity is decided solely by the provider's responses. The
// descriptor is owned by the caller and read once at adapter construction.
type DeviceDescriptor struct {
	Token   string
	Hub     string
	Group   string
	Project string
	Device  string
}
