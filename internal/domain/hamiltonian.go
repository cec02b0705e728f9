package domain

import "strings"

// Single-qubit Pauli operator labels used in term strings.
const (
	PauliX = 'X'
	PauliY = 'Y'
	PauliZ = 'Z'
)

// PauliTerm is a product of single-qubit Pauli operators on specific qubits,
// e.g. Operators "ZZ" on Qubits [0 2].
type PauliTerm struct {
	Operators string
	Qubits    []int
}

// NewPauliTerm creates a validated Pauli term.
func NewPauliTerm(operators string, qubits []int) (PauliTerm, error) {
	if operators == "" {
		return PauliTerm{}, NewValidationError("pauli term has no operators")
	}
	if len(operators) != len(qubits) {
		return PauliTerm{}, NewValidationError(
			"pauli term %q acts on %d operators but %d qubit indices given",
			operators, len(operators), len(qubits))
	}
	seen := make(map[int]struct{}, len(qubits))
	for _, q := range qubits {
		if q < 0 {
			return PauliTerm{}, NewValidationError("pauli term %q references negative qubit index %d", operators, q)
		}
		if _, dup := seen[q]; dup {
			return PauliTerm{}, NewValidationError("pauli term %q references qubit %d twice", operators, q)
		}
		seen[q] = struct{}{}
	}
	for _, op := range operators {
		switch op {
		case PauliX, PauliY, PauliZ:
		default:
			return PauliTerm{}, NewValidationError("unknown pauli label %q in term %q", string(op), operators)
		}
	}
	return PauliTerm{Operators: operators, Qubits: append([]int(nil), qubits...)}, nil
}

// MaxQubit returns the highest qubit index referenced by the term.
func (t PauliTerm) MaxQubit() int {
	maxIdx := 0
	for _, q := range t.Qubits {
		if q > maxIdx {
			maxIdx = q
		}
	}
	return maxIdx
}

// Uniform reports whether every operator in the term equals op.
func (t PauliTerm) Uniform(op rune) bool {
	return strings.Count(t.Operators, string(op)) == len(t.Operators)
}

// WeightedTerm pairs a Pauli term with its effective weight.
type WeightedTerm struct {
	Term   PauliTerm
	Weight float64
}

// Hamiltonian is an immutable weighted sum of Pauli terms plus a constant
// offset. Term order is significant: it fixes gate-emission order downstream.
type Hamiltonian struct {
	terms    []PauliTerm
	weights  []float64
	scale    float64
	constant float64
}

// NewHamiltonian creates a Hamiltonian from terms, per-term weights, a global
// scale factor applied to every weight, and a constant energy offset.
func NewHamiltonian(terms []PauliTerm, weights []float64, scale, constant float64) (Hamiltonian, error) {
	if len(terms) != len(weights) {
		return Hamiltonian{}, NewValidationError(
			"%d terms but %d weights", len(terms), len(weights))
	}
	for i, t := range terms {
		if len(t.Operators) != len(t.Qubits) {
			return Hamiltonian{}, NewValidationError(
				"term %d: %d operators but %d qubit indices", i, len(t.Operators), len(t.Qubits))
		}
		for _, q := range t.Qubits {
			if q < 0 {
				return Hamiltonian{}, NewValidationError("term %d references negative qubit index %d", i, q)
			}
		}
	}
	return Hamiltonian{
		terms:    append([]PauliTerm(nil), terms...),
		weights:  append([]float64(nil), weights...),
		scale:    scale,
		constant: constant,
	}, nil
}

// XMixerHamiltonian builds the standard transverse-field mixer: a single-qubit
// X term of weight -1 on each of n qubits, in index order. The -1 weight yields
// the conventional rx(-2β) mixer rotation.
func XMixerHamiltonian(n int) Hamiltonian {
	terms := make([]PauliTerm, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		terms[i] = PauliTerm{Operators: "X", Qubits: []int{i}}
		weights[i] = -1
	}
	return Hamiltonian{terms: terms, weights: weights, scale: 1}
}

// Terms returns the ordered list of (term, weight*scale) pairs.
func (h Hamiltonian) Terms() []WeightedTerm {
	out := make([]WeightedTerm, len(h.terms))
	for i, t := range h.terms {
		out[i] = WeightedTerm{Term: t, Weight: h.weights[i] * h.scale}
	}
	return out
}

// NumTerms returns the number of Pauli terms.
func (h Hamiltonian) NumTerms() int { return len(h.terms) }

// Constant returns the constant energy offset.
func (h Hamiltonian) Constant() float64 { return h.constant }

// MaxQubit returns the highest qubit index referenced by any term, or -1 for
// an empty Hamiltonian.
func (h Hamiltonian) MaxQubit() int {
	maxIdx := -1
	for _, t := range h.terms {
		if m := t.MaxQubit(); m > maxIdx {
			maxIdx = m
		}
	}
	return maxIdx
}
