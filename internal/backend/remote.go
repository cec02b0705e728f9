package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/metrics"
)

// ProviderClient is the remote provider surface the remote backend consumes.
type ProviderClient interface {
	Authenticate(ctx context.Context) error
	ResolveDevice(ctx context.Context, device string) error
	RunJob(ctx context.Context, device string, circ circuit.Circuit, shots int) (domain.Counts, error)
}

// Remote executes circuits on a provider-hosted device and returns
// measurement counts.
type Remote struct {
	client ProviderClient
	device string
	logger *zap.Logger
}

// NewRemote connects to the provider and resolves the requested device.
// Credentials are verified before device resolution; each failure mode maps
// to its own error so callers can distinguish a bad token from a bad device
// name.
func NewRemote(ctx context.Context, client ProviderClient, desc domain.DeviceDescriptor, logger *zap.Logger) (*Remote, error) {
	if err := client.Authenticate(ctx); err != nil {
		logger.Warn("provider authentication failed", zap.Error(err))
		return nil, domain.NewAuthenticationFailure(err)
	}
	if err := client.ResolveDevice(ctx, desc.Device); err != nil {
		logger.Warn("provider device resolution failed",
			zap.String("device", desc.Device),
			zap.Error(err))
		return nil, domain.NewDeviceResolutionFailure(desc.Device, err)
	}

	logger.Info("remote backend ready", zap.String("device", desc.Device))
	return &Remote{client: client, device: desc.Device, logger: logger}, nil
}

// Kind implements domain.Backend.
func (b *Remote) Kind() domain.BackendKind {
	return domain.BackendSamplerRemote
}

// Execute implements domain.Backend. Shots must be positive.
func (b *Remote) Execute(ctx context.Context, circ circuit.Circuit, shots int) (domain.ExecutionResult, error) {
	if shots <= 0 {
		return domain.ExecutionResult{}, domain.NewValidationError("shot count must be positive, got %d", shots)
	}

	counts, err := b.client.RunJob(ctx, b.device, circ, shots)
	if err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("device %q: %w: %w", b.device, domain.ErrExecution, err)
	}

	metrics.ShotsTotal.WithLabelValues(string(domain.BackendSamplerRemote)).Add(float64(shots))

	return domain.ExecutionResult{
		Kind:   domain.ResultCounts,
		Counts: counts,
		Shots:  shots,
	}, nil
}
