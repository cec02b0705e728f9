package chi

import (
	"fmt"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/usecase/compile"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
)

// termDTO is one weighted Pauli term on the wire.
type termDTO struct {
	Operators string  `json:"operators"`
	Qubits    []int   `json:"qubits"`
	Weight    float64 `json:"weight"`
}

// hamiltonianDTO is a Hamiltonian on the wire.
type hamiltonianDTO struct {
	Terms    []termDTO `json:"terms"`
	Scale    *float64  `json:"scale,omitempty"`
	Constant float64   `json:"constant,omitempty"`
}

// gateDTO is one prepend/append gate on the wire.
type gateDTO struct {
	Kind   string  `json:"kind"`
	Qubits []int   `json:"qubits"`
	Angle  float64 `json:"angle,omitempty"`
}

// circuitSpecDTO is the shared circuit description of both endpoints.
type circuitSpecDTO struct {
	Cost              hamiltonianDTO  `json:"cost"`
	Mixer             *hamiltonianDTO `json:"mixer,omitempty"`
	Depth             int             `json:"depth"`
	InitSuperposition bool            `json:"init_superposition"`
	Prepend           []gateDTO       `json:"prepend,omitempty"`
	Append            []gateDTO       `json:"append,omitempty"`
	Shots             *int            `json:"shots,omitempty"`
}

// evaluationRequestDTO is the POST /v1/evaluations body.
type evaluationRequestDTO struct {
	circuitSpecDTO
	Betas  []float64 `json:"betas"`
	Gammas []float64 `json:"gammas"`
}

// angleSetDTO is one sweep point.
type angleSetDTO struct {
	Betas  []float64 `json:"betas"`
	Gammas []float64 `json:"gammas"`
}

// sweepRequestDTO is the POST /v1/sweeps body.
type sweepRequestDTO struct {
	circuitSpecDTO
	AngleSets []angleSetDTO `json:"angle_sets"`
}

// evaluationResponseDTO is one evaluation result on the wire.
type evaluationResponseDTO struct {
	Expectation float64        `json:"expectation"`
	Backend     string         `json:"backend"`
	Shots       int            `json:"shots,omitempty"`
	GateCount   int            `json:"gate_count,omitempty"`
	Counts      map[string]int `json:"counts,omitempty"`
	Cached      bool           `json:"cached"`
}

// sweepResponseDTO is the POST /v1/sweeps response.
type sweepResponseDTO struct {
	Items []evaluationResponseDTO `json:"items"`
	Count int                     `json:"count"`
}

// healthResponseDTO is the GET /health response.
type healthResponseDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// errorResponseDTO is the error envelope.
type errorResponseDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func hamiltonianFromDTO(dto hamiltonianDTO) (domain.Hamiltonian, error) {
	terms := make([]domain.PauliTerm, 0, len(dto.Terms))
	weights := make([]float64, 0, len(dto.Terms))
	for i, t := range dto.Terms {
		term, err := domain.NewPauliTerm(t.Operators, t.Qubits)
		if err != nil {
			return domain.Hamiltonian{}, fmt.Errorf("term %d: %w", i, err)
		}
		terms = append(terms, term)
		weights = append(weights, t.Weight)
	}

	scale := 1.0
	if dto.Scale != nil {
		scale = *dto.Scale
	}

	h, err := domain.NewHamiltonian(terms, weights, scale, dto.Constant)
	if err != nil {
		return domain.Hamiltonian{}, err
	}
	return h, nil
}

func gatesFromDTO(dtos []gateDTO) []circuit.Gate {
	if len(dtos) == 0 {
		return nil
	}
	gates := make([]circuit.Gate, len(dtos))
	for i, g := range dtos {
		gates[i] = circuit.Gate{Kind: circuit.Kind(g.Kind), Qubits: g.Qubits, Angle: g.Angle}
	}
	return gates
}

// paramsFromSpec builds circuit parameters from the shared spec fields. A
// missing mixer defaults to the transverse-field X mixer over the full
// register.
func paramsFromSpec(spec circuitSpecDTO) (domain.CircuitParams, compile.Options, error) {
	cost, err := hamiltonianFromDTO(spec.Cost)
	if err != nil {
		return domain.CircuitParams{}, compile.Options{}, fmt.Errorf("cost: %w", err)
	}

	var mixer domain.Hamiltonian
	if spec.Mixer != nil {
		mixer, err = hamiltonianFromDTO(*spec.Mixer)
		if err != nil {
			return domain.CircuitParams{}, compile.Options{}, fmt.Errorf("mixer: %w", err)
		}
	} else {
		mixer = domain.XMixerHamiltonian(cost.MaxQubit() + 1)
	}

	params, err := domain.NewCircuitParams(cost, mixer, spec.Depth)
	if err != nil {
		return domain.CircuitParams{}, compile.Options{}, err
	}

	opts := compile.Options{
		InitSuperposition: spec.InitSuperposition,
		Prepend:           gatesFromDTO(spec.Prepend),
		Append:            gatesFromDTO(spec.Append),
	}
	return params, opts, nil
}

func evaluationToDTO(res evaluate.Evaluation, backend string) evaluationResponseDTO {
	dto := evaluationResponseDTO{
		Expectation: res.Expectation,
		Backend:     backend,
		Shots:       res.Shots,
		GateCount:   len(res.Circuit.Gates),
		Cached:      res.Cached,
	}
	if len(res.Counts) > 0 {
		dto.Counts = res.Counts
	}
	return dto
}
