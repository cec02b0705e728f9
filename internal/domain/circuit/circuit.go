// Package circuit defines the immutable gate-sequence representation shared
// by the compiler, the backends and the simulator.
package circuit

// Kind names a gate operation.
type Kind string

// Gate kinds emitted by the compiler. MeasureAll is the terminal full-register
// measurement marker present at the end of every compiled circuit.
const (
	Hadamard   Kind = "h"
	PauliX     Kind = "x"
	RX         Kind = "rx"
	RZ         Kind = "rz"
	CNOT       Kind = "cx"
	MeasureAll Kind = "measure_all"
)

// Gate is a single instruction: an operation kind, its target qubit(s) and,
// for rotations, an angle in radians.
type Gate struct {
	Kind   Kind
	Qubits []int
	Angle  float64
}

// Equal reports gate-for-gate structural equality.
func (g Gate) Equal(o Gate) bool {
	if g.Kind != o.Kind || g.Angle != o.Angle || len(g.Qubits) != len(o.Qubits) {
		return false
	}
	for i := range g.Qubits {
		if g.Qubits[i] != o.Qubits[i] {
			return false
		}
	}
	return true
}

// H builds a Hadamard gate on qubit q.
func H(q int) Gate { return Gate{Kind: Hadamard, Qubits: []int{q}} }

// X builds a Pauli-X gate on qubit q.
func X(q int) Gate { return Gate{Kind: PauliX, Qubits: []int{q}} }

// Rx builds an X-axis rotation by theta on qubit q.
func Rx(theta float64, q int) Gate { return Gate{Kind: RX, Qubits: []int{q}, Angle: theta} }

// Rz builds a Z-axis rotation by theta on qubit q.
func Rz(theta float64, q int) Gate { return Gate{Kind: RZ, Qubits: []int{q}, Angle: theta} }

// CX builds a CNOT gate with the given control and target qubits.
func CX(control, target int) Gate { return Gate{Kind: CNOT, Qubits: []int{control, target}} }

// Measure builds the terminal full-register measurement marker.
func Measure() Gate { return Gate{Kind: MeasureAll} }

// Circuit is an ordered gate sequence over a fixed qubit register. Produced
// fresh per evaluation and never mutated after emission, so two circuits can
// be compared structurally.
type Circuit struct {
	NQubits int
	Gates   []Gate
}

// Equal reports whether two circuits are gate-for-gate identical.
func (c Circuit) Equal(o Circuit) bool {
	if c.NQubits != o.NQubits || len(c.Gates) != len(o.Gates) {
		return false
	}
	for i := range c.Gates {
		if !c.Gates[i].Equal(o.Gates[i]) {
			return false
		}
	}
	return true
}
