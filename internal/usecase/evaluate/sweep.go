package evaluate

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/usecase/compile"
)

// SweepRequest evaluates one circuit over many angle sets.
type SweepRequest struct {
	Params    domain.CircuitParams
	Options   compile.Options
	Shots     int
	AngleSets []domain.Angles
}

// Sweeper fans a sweep out over a bounded pool of concurrent evaluations.
// Wrapping a cached Evaluator makes repeated angle sets free.
type Sweeper struct {
	eval        Evaluator
	maxParallel int
	logger      *zap.Logger
}

// NewSweeper creates a sweep orchestrator. maxParallel below 1 is treated
// as 1.
func NewSweeper(eval Evaluator, maxParallel int, logger *zap.Logger) *Sweeper {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Sweeper{eval: eval, maxParallel: maxParallel, logger: logger}
}

// Sweep evaluates every angle set and returns results in input order. The
// first failure cancels the remaining work.
func (s *Sweeper) Sweep(ctx context.Context, req SweepRequest) ([]Evaluation, error) {
	if len(req.AngleSets) == 0 {
		return nil, domain.NewValidationError("sweep requires at least one angle set")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Evaluation, len(req.AngleSets))
	sem := make(chan struct{}, s.maxParallel)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, angles := range req.AngleSets {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, angles domain.Angles) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.eval.Evaluate(ctx, Request{
				Params:  req.Params,
				Angles:  angles,
				Options: req.Options,
				Shots:   req.Shots,
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("angle set %d: %w", i, err)
					cancel()
				}
				mu.Unlock()
				return
			}
			results[i] = res
		}(i, angles)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	s.logger.Debug("sweep completed",
		zap.Int("angle_sets", len(req.AngleSets)),
		zap.Int("max_parallel", s.maxParallel))
	return results, nil
}
