package simulator

import (
	"math/rand"
	"sort"

	"github.com/qirion-cloud/qaoad/internal/domain"
)

// Sample draws shots measurement outcomes from the state's probability
// distribution and aggregates them into a bitstring count map. The sum of all
// counts always equals shots.
func Sample(s *State, shots int, rng *rand.Rand) domain.Counts {
	probs := s.Probabilities()
	cumulative := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		cumulative[i] = sum
	}

	counts := make(domain.Counts)
	for i := 0; i < shots; i++ {
		// Scale by the total mass so float rounding never drops a shot.
		r := rng.Float64() * sum
		z := sort.SearchFloat64s(cumulative, r)
		if z == len(cumulative) {
			z = len(cumulative) - 1
		}
		counts[FormatBasisState(z, s.NQubits)]++
	}
	return counts
}
