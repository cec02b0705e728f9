package domain

// CircuitParams binds a cost Hamiltonian, a mixer Hamiltonian and a layer
// depth into the static description of a variational circuit. Built once per
// problem instance and reused across many angle evaluations.
type CircuitParams struct {
	cost    Hamiltonian
	mixer   Hamiltonian
	p       int
	nQubits int
}

// NewCircuitParams composes cost and mixer Hamiltonians at depth p. The qubit
// count is derived as one greater than the maximum index referenced by either
// Hamiltonian.
func NewCircuitParams(cost, mixer Hamiltonian, p int) (CircuitParams, error) {
	if p < 0 {
		return CircuitParams{}, NewValidationError("depth p must be non-negative, got %d", p)
	}
	maxIdx := cost.MaxQubit()
	if m := mixer.MaxQubit(); m > maxIdx {
		maxIdx = m
	}
	if maxIdx < 0 {
		return CircuitParams{}, NewValidationError("cost and mixer Hamiltonians are both empty")
	}
	return CircuitParams{cost: cost, mixer: mixer, p: p, nQubits: maxIdx + 1}, nil
}

// Cost returns the cost Hamiltonian.
func (c CircuitParams) Cost() Hamiltonian { return c.cost }

// Mixer returns the mixer Hamiltonian.
func (c CircuitParams) Mixer() Hamiltonian { return c.mixer }

// Depth returns the number of cost/mixer layers p.
func (c CircuitParams) Depth() int { return c.p }

// NQubits returns the derived qubit count.
func (c CircuitParams) NQubits() int { return c.nQubits }
