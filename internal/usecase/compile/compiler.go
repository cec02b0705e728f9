// Package compile turns circuit parameters and variational angles into a
// concrete gate sequence. Compilation is a pure function: no builder state,
// no reordering, no gate fusion. Downstream verification compares circuits
// gate by gate, so the emission order here is a correctness contract.
package compile

import (
	"fmt"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
)

// Options are the structural modifiers of a compilation.
type Options struct {
	// InitSuperposition prepends a Hadamard on every qubit before layer 0's
	// cost sub-layer.
	InitSuperposition bool
	// Prepend is emitted verbatim before everything else.
	Prepend []circuit.Gate
	// Append is emitted verbatim after the final mixer sub-layer, before the
	// measurement marker.
	Append []circuit.Gate
}

// Compile emits the gate sequence for one evaluation. Per layer l in 0..p-1:
//
//	l==0: prepend gates, then (if set) a Hadamard on every qubit in index order
//	cost sub-layer: each cost term in declared order as rz(2*γ_l*w), two-qubit
//	  and longer Z strings realized with a CNOT-chain sandwich
//	mixer sub-layer: each mixer term in declared order as rx(2*β_l*w)
//	l==p-1: append gates
//
// followed by one full-register measurement marker. All validation happens
// before the first gate is emitted.
func Compile(params domain.CircuitParams, angles domain.Angles, opts Options) (circuit.Circuit, error) {
	p := params.Depth()
	if err := angles.Validate(p); err != nil {
		return circuit.Circuit{}, err
	}

	costTerms := params.Cost().Terms()
	for i, wt := range costTerms {
		if !wt.Term.Uniform(domain.PauliZ) {
			return circuit.Circuit{}, fmt.Errorf("%w: cost term %d is %q, only Z-type terms compile to phase rotations",
				domain.ErrUnsupportedTerm, i, wt.Term.Operators)
		}
	}
	mixerTerms := params.Mixer().Terms()
	for i, wt := range mixerTerms {
		if wt.Term.Operators != "X" {
			return circuit.Circuit{}, fmt.Errorf("%w: mixer term %d is %q, only single-qubit X mixers are supported",
				domain.ErrUnsupportedTerm, i, wt.Term.Operators)
		}
	}

	n := params.NQubits()
	gates := make([]circuit.Gate, 0, estimateGateCount(p, n, costTerms, opts))

	if p == 0 {
		if opts.InitSuperposition {
			gates = appendSuperposition(gates, n)
		}
		gates = append(gates, circuit.Measure())
		return circuit.Circuit{NQubits: n, Gates: gates}, nil
	}

	for l := 0; l < p; l++ {
		if l == 0 {
			gates = append(gates, opts.Prepend...)
			if opts.InitSuperposition {
				gates = appendSuperposition(gates, n)
			}
		}
		for _, wt := range costTerms {
			gates = appendCostTerm(gates, wt, angles.Gammas[l])
		}
		for _, wt := range mixerTerms {
			gates = append(gates, circuit.Rx(2*angles.Betas[l]*wt.Weight, wt.Term.Qubits[0]))
		}
		if l == p-1 {
			gates = append(gates, opts.Append...)
		}
	}

	gates = append(gates, circuit.Measure())
	return circuit.Circuit{NQubits: n, Gates: gates}, nil
}

func appendSuperposition(gates []circuit.Gate, n int) []circuit.Gate {
	for q := 0; q < n; q++ {
		gates = append(gates, circuit.H(q))
	}
	return gates
}

// appendCostTerm emits one Z-type term as a phase rotation. A single-qubit Z
// is a bare rz; longer Z strings entangle along the qubit chain, rotate the
// last qubit and unentangle in reverse, which for "ZZ" on (a,b) is exactly
// cx(a,b), rz(b), cx(a,b).
func appendCostTerm(gates []circuit.Gate, wt domain.WeightedTerm, gamma float64) []circuit.Gate {
	angle := 2 * gamma * wt.Weight
	qs := wt.Term.Qubits
	if len(qs) == 1 {
		return append(gates, circuit.Rz(angle, qs[0]))
	}
	for i := 0; i < len(qs)-1; i++ {
		gates = append(gates, circuit.CX(qs[i], qs[i+1]))
	}
	gates = append(gates, circuit.Rz(angle, qs[len(qs)-1]))
	for i := len(qs) - 2; i >= 0; i-- {
		gates = append(gates, circuit.CX(qs[i], qs[i+1]))
	}
	return gates
}

func estimateGateCount(p, n int, costTerms []domain.WeightedTerm, opts Options) int {
	perLayer := n
	for _, wt := range costTerms {
		perLayer += 2*len(wt.Term.Qubits) - 1
	}
	return p*perLayer + n + len(opts.Prepend) + len(opts.Append) + 1
}
