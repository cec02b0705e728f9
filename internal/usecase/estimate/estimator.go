// Package estimate reduces raw execution results to scalar expectation
// values of a Z-type Hamiltonian. The state-vector path is exact; the counts
// path is a statistical estimate that converges with shot count.
package estimate

import (
	"fmt"
	"math/cmplx"

	"github.com/qirion-cloud/qaoad/internal/domain"
)

// FromResult dispatches on the result kind.
func FromResult(h domain.Hamiltonian, res domain.ExecutionResult) (float64, error) {
	switch res.Kind {
	case domain.ResultStateVector:
		return FromStateVector(h, res.Amplitudes)
	case domain.ResultCounts:
		return FromCounts(h, res.Counts, res.Shots)
	default:
		return 0, fmt.Errorf("unknown execution result kind %q", res.Kind)
	}
}

// FromStateVector computes the exact expectation Σ_z |a_z|² E(z) plus the
// constant offset. Z-type terms are diagonal in the computational basis, so
// no basis change is needed.
func FromStateVector(h domain.Hamiltonian, amps []complex128) (float64, error) {
	terms := h.Terms()
	if err := requireZTerms(terms); err != nil {
		return 0, err
	}

	expectation := 0.0
	for z, a := range amps {
		prob := real(a * cmplx.Conj(a))
		if prob == 0 {
			continue
		}
		expectation += prob * basisEnergy(terms, z)
	}
	return expectation + h.Constant(), nil
}

// FromCounts computes the shot-weighted estimate Σ_s (count_s/shots) E(s)
// plus the constant offset.
func FromCounts(h domain.Hamiltonian, counts domain.Counts, shots int) (float64, error) {
	terms := h.Terms()
	if err := requireZTerms(terms); err != nil {
		return 0, err
	}
	if shots <= 0 {
		return 0, domain.NewValidationError("shot count must be positive, got %d", shots)
	}

	expectation := 0.0
	for bitstring, count := range counts {
		if count == 0 {
			continue
		}
		energy, err := bitstringEnergy(terms, bitstring)
		if err != nil {
			return 0, err
		}
		expectation += float64(count) / float64(shots) * energy
	}
	return expectation + h.Constant(), nil
}

func requireZTerms(terms []domain.WeightedTerm) error {
	for i, wt := range terms {
		if !wt.Term.Uniform(domain.PauliZ) {
			return fmt.Errorf("%w: term %d is %q, expectation requires Z-type terms in the measurement basis",
				domain.ErrUnsupportedTerm, i, wt.Term.Operators)
		}
	}
	return nil
}

// basisEnergy evaluates the Hamiltonian eigenvalue of basis index z: the
// product of ±1 per referenced qubit, weighted per term.
func basisEnergy(terms []domain.WeightedTerm, z int) float64 {
	energy := 0.0
	for _, wt := range terms {
		eig := 1.0
		for _, q := range wt.Term.Qubits {
			if z&(1<<q) != 0 {
				eig = -eig
			}
		}
		energy += wt.Weight * eig
	}
	return energy
}

// bitstringEnergy evaluates the eigenvalue of a measured bitstring, whose
// leftmost character is the highest qubit index.
func bitstringEnergy(terms []domain.WeightedTerm, bitstring string) (float64, error) {
	n := len(bitstring)
	energy := 0.0
	for _, wt := range terms {
		eig := 1.0
		for _, q := range wt.Term.Qubits {
			if q >= n {
				return 0, domain.NewValidationError(
					"bitstring %q has %d bits but term references qubit %d", bitstring, n, q)
			}
			switch bitstring[n-1-q] {
			case '1':
				eig = -eig
			case '0':
			default:
				return 0, domain.NewValidationError("bitstring %q contains a non-binary character", bitstring)
			}
		}
		energy += wt.Weight * eig
	}
	return energy, nil
}
