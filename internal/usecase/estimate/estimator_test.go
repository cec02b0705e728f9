package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/qirion-cloud/qaoad/internal/domain"
)

func mustHamiltonian(t *testing.T, terms []domain.PauliTerm, weights []float64, scale, constant float64) domain.Hamiltonian {
	t.Helper()
	h, err := domain.NewHamiltonian(terms, weights, scale, constant)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}
	return h
}

func mustTerm(t *testing.T, ops string, qubits []int) domain.PauliTerm {
	t.Helper()
	term, err := domain.NewPauliTerm(ops, qubits)
	if err != nil {
		t.Fatalf("NewPauliTerm: %v", err)
	}
	return term
}

func TestFromCounts_SingleZ(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{0})},
		[]float64{1}, 1, 0,
	)

	// 60 shots at |0> (eigenvalue +1), 40 at |1> (eigenvalue -1).
	counts := domain.Counts{"0": 60, "1": 40}
	got, err := FromCounts(h, counts, 100)
	if err != nil {
		t.Fatalf("FromCounts failed: %v", err)
	}
	if math.Abs(got-0.2) > 1e-12 {
		t.Errorf("expectation = %f, want 0.2", got)
	}
}

func TestFromCounts_ZZBitOrdering(t *testing.T) {
	// Term on qubits (0,2); leftmost bitstring char is qubit 2.
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "ZZ", []int{0, 2})},
		[]float64{1}, 1, 0,
	)

	tests := []struct {
		bitstring string
		want      float64
	}{
		{"000", 1},  // both +1
		{"001", -1}, // qubit 0 set
		{"100", -1}, // qubit 2 set
		{"101", 1},  // both set
		{"010", 1},  // qubit 1 not referenced
	}
	for _, tc := range tests {
		got, err := FromCounts(h, domain.Counts{tc.bitstring: 10}, 10)
		if err != nil {
			t.Fatalf("FromCounts(%q) failed: %v", tc.bitstring, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("expectation(%q) = %f, want %f", tc.bitstring, got, tc.want)
		}
	}
}

func TestFromCounts_ScaleAndConstant(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{0})},
		[]float64{2}, 3, 1.5,
	)

	// All shots at |1>: expectation = 2*3*(-1) + 1.5 = -4.5.
	got, err := FromCounts(h, domain.Counts{"1": 5}, 5)
	if err != nil {
		t.Fatalf("FromCounts failed: %v", err)
	}
	if math.Abs(got-(-4.5)) > 1e-12 {
		t.Errorf("expectation = %f, want -4.5", got)
	}
}

func TestFromCounts_InvalidInputs(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{0})},
		[]float64{1}, 1, 0,
	)

	if _, err := FromCounts(h, domain.Counts{"0": 1}, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero shots: expected validation error, got %v", err)
	}
	if _, err := FromCounts(h, domain.Counts{"2": 1}, 1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("non-binary bitstring: expected validation error, got %v", err)
	}

	wide := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{5})},
		[]float64{1}, 1, 0,
	)
	if _, err := FromCounts(wide, domain.Counts{"01": 1}, 1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("short bitstring: expected validation error, got %v", err)
	}
}

func TestFromCounts_RejectsNonZTerms(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "X", []int{0})},
		[]float64{1}, 1, 0,
	)
	if _, err := FromCounts(h, domain.Counts{"0": 1}, 1); !errors.Is(err, domain.ErrUnsupportedTerm) {
		t.Errorf("expected unsupported term error, got %v", err)
	}
}

func TestFromStateVector_BasisStates(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "ZZ", []int{0, 1})},
		[]float64{1}, 1, 0,
	)

	// |00>: eigenvalue +1.
	amps := []complex128{1, 0, 0, 0}
	got, err := FromStateVector(h, amps)
	if err != nil {
		t.Fatalf("FromStateVector failed: %v", err)
	}
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("expectation(|00>) = %f, want 1", got)
	}

	// |01>: qubit 0 set, eigenvalue -1.
	amps = []complex128{0, 1, 0, 0}
	got, err = FromStateVector(h, amps)
	if err != nil {
		t.Fatalf("FromStateVector failed: %v", err)
	}
	if math.Abs(got-(-1)) > 1e-12 {
		t.Errorf("expectation(|01>) = %f, want -1", got)
	}
}

func TestFromStateVector_Superposition(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{0})},
		[]float64{1}, 1, 0.25,
	)

	// Uniform superposition: <Z> = 0, plus offset.
	a := complex(1/math.Sqrt2, 0)
	got, err := FromStateVector(h, []complex128{a, a})
	if err != nil {
		t.Fatalf("FromStateVector failed: %v", err)
	}
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expectation = %f, want 0.25", got)
	}
}

func TestFromResult_Dispatch(t *testing.T) {
	h := mustHamiltonian(t,
		[]domain.PauliTerm{mustTerm(t, "Z", []int{0})},
		[]float64{1}, 1, 0,
	)

	viaVector, err := FromResult(h, domain.ExecutionResult{
		Kind:       domain.ResultStateVector,
		Amplitudes: []complex128{0, 1},
	})
	if err != nil {
		t.Fatalf("FromResult(statevector) failed: %v", err)
	}
	if math.Abs(viaVector-(-1)) > 1e-12 {
		t.Errorf("statevector expectation = %f, want -1", viaVector)
	}

	viaCounts, err := FromResult(h, domain.ExecutionResult{
		Kind:   domain.ResultCounts,
		Counts: domain.Counts{"1": 10},
		Shots:  10,
	})
	if err != nil {
		t.Fatalf("FromResult(counts) failed: %v", err)
	}
	if math.Abs(viaCounts-(-1)) > 1e-12 {
		t.Errorf("counts expectation = %f, want -1", viaCounts)
	}

	if _, err := FromResult(h, domain.ExecutionResult{Kind: "histogram"}); err == nil {
		t.Error("expected error for unknown result kind")
	}
}
