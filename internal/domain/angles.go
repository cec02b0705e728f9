package domain

// Angles holds the per-layer variational parameters of a depth-p circuit:
// Gammas drive the cost layers, Betas the mixer layers.
type Angles struct {
	Betas  []float64
	Gammas []float64
}

// Validate checks that both angle lists have exactly p entries. A mismatch is
// a validation failure, never a silent truncation.
func (a Angles) Validate(p int) error {
	if len(a.Betas) != p {
		return NewValidationError("expected %d betas, got %d", p, len(a.Betas))
	}
	if len(a.Gammas) != p {
		return NewValidationError("expected %d gammas, got %d", p, len(a.Gammas))
	}
	return nil
}
