package qaoad

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/backend"
	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/transport/provider"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
)

const (
	defaultShots       = 1024
	defaultMaxParallel = 4
)

// Client is the qaoad SDK entry point.
type Client struct {
	svc     *evaluate.Service
	sweeper *evaluate.Sweeper
	kind    domain.BackendKind
	shots   int
}

// New creates a Client. The provided context is used for remote provider
// connectivity checks; local backends ignore it.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:      "statevector",
		shots:       defaultShots,
		maxParallel: defaultMaxParallel,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	exec, err := createBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := evaluate.New(exec, cfg.logger)
	return &Client{
		svc:     svc,
		sweeper: evaluate.NewSweeper(svc, cfg.maxParallel, cfg.logger),
		kind:    exec.Kind(),
		shots:   cfg.shots,
	}, nil
}

func createBackend(ctx context.Context, cfg *clientConfig) (evaluate.Executor, error) {
	switch cfg.driver {
	case "statevector":
		return backend.NewStatevector(cfg.logger), nil
	case "sampler_local":
		return backend.NewSampler(cfg.seed, cfg.logger), nil
	case "sampler_remote":
		client := provider.NewClient(&provider.Config{
			BaseURL: cfg.remoteBaseURL,
			Token:   cfg.remoteToken,
			Hub:     cfg.remoteHub,
			Group:   cfg.remoteGroup,
			Project: cfg.remoteProject,
			Timeout: cfg.remoteTimeout,
			Logger:  cfg.logger,
		})
		desc := domain.DeviceDescriptor{
			Token:   cfg.remoteToken,
			Hub:     cfg.remoteHub,
			Group:   cfg.remoteGroup,
			Project: cfg.remoteProject,
			Device:  cfg.remoteDevice,
		}
		b, err := backend.NewRemote(ctx, client, desc, cfg.logger)
		if err != nil {
			return nil, fmt.Errorf("qaoad: connect remote backend: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("qaoad: unknown backend driver %q", cfg.driver)
	}
}

// Backend reports the active backend kind.
func (c *Client) Backend() string {
	return string(c.kind)
}

// Evaluate compiles, executes and estimates one angle set.
func (c *Client) Evaluate(ctx context.Context, req Request) (Result, error) {
	params, err := buildParams(req.Cost, req.Mixer, req.Depth)
	if err != nil {
		return Result{}, fmt.Errorf("qaoad: %w", err)
	}

	res, err := c.svc.Evaluate(ctx, evaluate.Request{
		Params:  params,
		Angles:  domain.Angles{Betas: req.Betas, Gammas: req.Gammas},
		Options: compileOptions(req.InitSuperposition, req.Prepend, req.Append),
		Shots:   c.resolveShots(req.Shots),
	})
	if err != nil {
		return Result{}, fmt.Errorf("qaoad: %w", err)
	}
	return resultFromEvaluation(res), nil
}

// Sweep evaluates every angle set with bounded concurrency and returns
// results in input order.
func (c *Client) Sweep(ctx context.Context, req SweepRequest) ([]Result, error) {
	params, err := buildParams(req.Cost, req.Mixer, req.Depth)
	if err != nil {
		return nil, fmt.Errorf("qaoad: %w", err)
	}

	angleSets := make([]domain.Angles, len(req.AngleSets))
	for i, as := range req.AngleSets {
		angleSets[i] = domain.Angles{Betas: as.Betas, Gammas: as.Gammas}
	}

	evals, err := c.sweeper.Sweep(ctx, evaluate.SweepRequest{
		Params:    params,
		Options:   compileOptions(req.InitSuperposition, req.Prepend, req.Append),
		Shots:     c.resolveShots(req.Shots),
		AngleSets: angleSets,
	})
	if err != nil {
		return nil, fmt.Errorf("qaoad: %w", err)
	}

	results := make([]Result, len(evals))
	for i, e := range evals {
		results[i] = resultFromEvaluation(e)
	}
	return results, nil
}

func (c *Client) resolveShots(override int) int {
	if override > 0 {
		return override
	}
	return c.shots
}
