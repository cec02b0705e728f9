// Package simulator implements a dense state-vector engine for the gate set
// the compiler emits. Basis states are indexed so that bit q of the index is
// the state of qubit q.
package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
)

// State is the full complex amplitude vector of an n-qubit register.
type State struct {
	Amplitudes []complex128
	NQubits    int
}

// NewState prepares |0...0> on n qubits.
func NewState(n int) *State {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &State{Amplitudes: amps, NQubits: n}
}

// Run prepares |0...0> and applies every gate of the circuit in order. The
// measurement marker is a no-op here; measurement semantics live in sampling
// and estimation.
func Run(c circuit.Circuit) (*State, error) {
	s := NewState(c.NQubits)
	for i, g := range c.Gates {
		if err := s.Apply(g); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return s, nil
}

// Apply applies a single gate to the state in place.
func (s *State) Apply(g circuit.Gate) error {
	switch g.Kind {
	case circuit.Hadamard:
		s.applyH(g.Qubits[0])
	case circuit.PauliX:
		s.applyX(g.Qubits[0])
	case circuit.RX:
		s.applyRX(g.Qubits[0], g.Angle)
	case circuit.RZ:
		s.applyRZ(g.Qubits[0], g.Angle)
	case circuit.CNOT:
		s.applyCX(g.Qubits[0], g.Qubits[1])
	case circuit.MeasureAll:
		// no-op: the state is read out by the caller
	default:
		return fmt.Errorf("unknown gate kind %q", g.Kind)
	}
	return nil
}

// Probabilities returns |amplitude|^2 per basis state.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

func (s *State) applyH(q int) {
	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = factor * (a0 + a1)
			s.Amplitudes[j] = factor * (a0 - a1)
		}
	}
}

func (s *State) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *State) applyRX(q int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 + js*a1
			s.Amplitudes[j] = js*a0 + c*a1
		}
	}
}

func (s *State) applyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	conj := cmplx.Conj(phase)
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= conj
		}
	}
}

func (s *State) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// FormatBasisState renders basis index z as a measurement bitstring: the
// leftmost character is the highest qubit index, matching provider count maps.
func FormatBasisState(z, n int) string {
	buf := make([]byte, n)
	for q := 0; q < n; q++ {
		if z&(1<<q) != 0 {
			buf[n-1-q] = '1'
		} else {
			buf[n-1-q] = '0'
		}
	}
	return string(buf)
}
