package qaoad

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver string // "statevector", "sampler_local" or "sampler_remote"
	seed   int64
	shots  int

	maxParallel int

	remoteBaseURL string
	remoteToken   string
	remoteHub     string
	remoteGroup   string
	remoteProject string
	remoteDevice  string
	remoteTimeout time.Duration

	logger *zap.Logger
}

// WithSampler switches to the shot-based local backend with a fixed RNG seed.
func WithSampler(seed int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sampler_local"
		c.seed = seed
	})
}

// WithRemote switches to the shot-based remote backend. Credentials are
// verified and the device resolved during New.
func WithRemote(baseURL, token, device string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sampler_remote"
		c.remoteBaseURL = baseURL
		c.remoteToken = token
		c.remoteDevice = device
	})
}

// WithRemoteProject sets the provider hub/group/project triple for remote
// execution.
func WithRemoteProject(hub, group, project string) Option {
	return optionFunc(func(c *clientConfig) {
		c.remoteHub = hub
		c.remoteGroup = group
		c.remoteProject = project
	})
}

// WithRemoteTimeout sets the per-request timeout for the remote provider.
// Default: 60s.
func WithRemoteTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.remoteTimeout = timeout
	})
}

// WithShots sets the default shot count for shot-based backends.
// Default: 1024.
func WithShots(shots int) Option {
	return optionFunc(func(c *clientConfig) {
		c.shots = shots
	})
}

// WithMaxParallel bounds sweep concurrency. Default: 4.
func WithMaxParallel(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxParallel = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
