package qaoad

import (
	"fmt"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/usecase/compile"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
)

// Term is one weighted Pauli string, e.g. {"ZZ", []int{0, 1}, 1.0}.
type Term struct {
	Operators string
	Qubits    []int
	Weight    float64
}

// Hamiltonian is a weighted sum of Pauli terms. Scale 0 is treated as 1.
type Hamiltonian struct {
	Terms    []Term
	Scale    float64
	Constant float64
}

// Gate is a prepend/append gate. Kind is one of "h", "x", "rx", "rz", "cx".
type Gate struct {
	Kind   string
	Qubits []int
	Angle  float64
}

// AngleSet is one sweep point.
type AngleSet struct {
	Betas  []float64
	Gammas []float64
}

// Request is a single evaluation. A nil Mixer defaults to the
// transverse-field X mixer over the full register. Shots 0 uses the client
// default.
type Request struct {
	Cost              Hamiltonian
	Mixer             *Hamiltonian
	Depth             int
	Betas             []float64
	Gammas            []float64
	InitSuperposition bool
	Prepend           []Gate
	Append            []Gate
	Shots             int
}

// SweepRequest evaluates one circuit over many angle sets.
type SweepRequest struct {
	Cost              Hamiltonian
	Mixer             *Hamiltonian
	Depth             int
	InitSuperposition bool
	Prepend           []Gate
	Append            []Gate
	Shots             int
	AngleSets         []AngleSet
}

// Result is one evaluation outcome. Counts is nil on the exact backend and
// on cache hits.
type Result struct {
	Expectation float64
	Shots       int
	GateCount   int
	Counts      map[string]int
	Cached      bool
}

func hamiltonianToDomain(h Hamiltonian) (domain.Hamiltonian, error) {
	terms := make([]domain.PauliTerm, 0, len(h.Terms))
	weights := make([]float64, 0, len(h.Terms))
	for i, t := range h.Terms {
		term, err := domain.NewPauliTerm(t.Operators, t.Qubits)
		if err != nil {
			return domain.Hamiltonian{}, fmt.Errorf("term %d: %w", i, err)
		}
		terms = append(terms, term)
		weights = append(weights, t.Weight)
	}

	scale := h.Scale
	if scale == 0 {
		scale = 1
	}
	return domain.NewHamiltonian(terms, weights, scale, h.Constant)
}

func gatesToDomain(gates []Gate) []circuit.Gate {
	if len(gates) == 0 {
		return nil
	}
	out := make([]circuit.Gate, len(gates))
	for i, g := range gates {
		out[i] = circuit.Gate{Kind: circuit.Kind(g.Kind), Qubits: g.Qubits, Angle: g.Angle}
	}
	return out
}

func buildParams(cost Hamiltonian, mixer *Hamiltonian, depth int) (domain.CircuitParams, error) {
	domCost, err := hamiltonianToDomain(cost)
	if err != nil {
		return domain.CircuitParams{}, fmt.Errorf("cost: %w", err)
	}

	var domMixer domain.Hamiltonian
	if mixer != nil {
		domMixer, err = hamiltonianToDomain(*mixer)
		if err != nil {
			return domain.CircuitParams{}, fmt.Errorf("mixer: %w", err)
		}
	} else {
		domMixer = domain.XMixerHamiltonian(domCost.MaxQubit() + 1)
	}

	return domain.NewCircuitParams(domCost, domMixer, depth)
}

func resultFromEvaluation(res evaluate.Evaluation) Result {
	out := Result{
		Expectation: res.Expectation,
		Shots:       res.Shots,
		GateCount:   len(res.Circuit.Gates),
		Cached:      res.Cached,
	}
	if len(res.Counts) > 0 {
		out.Counts = res.Counts
	}
	return out
}

func compileOptions(superposition bool, prepend, append []Gate) compile.Options {
	return compile.Options{
		InitSuperposition: superposition,
		Prepend:           gatesToDomain(prepend),
		Append:            gatesToDomain(append),
	}
}
