package health

import "context"

// DBPinger checks cache store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks remote provider availability.
type ProviderChecker interface {
	Authenticate(ctx context.Context) error
}
