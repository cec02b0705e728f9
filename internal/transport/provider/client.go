// Package provider implements the HTTP client for the remote quantum
// execution provider. The provider exposes a small JSON API: an account
// endpoint to validate credentials, a device catalog, and a job endpoint
// that runs a circuit and returns measurement counts.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/metrics"
)

// Config holds the provider connection settings.
type Config struct {
	BaseURL string
	Token   string
	Hub     string
	Group   string
	Project string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the remote provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	hub        string
	group      string
	project    string
	logger     *zap.Logger
}

// NewClient creates a provider client. Timeout defaults to 60s when unset.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		hub:        cfg.Hub,
		group:      cfg.Group,
		project:    cfg.Project,
		logger:     cfg.Logger,
	}
}

type deviceResponse struct {
	Name   string `json:"name"`
	Qubits int    `json:"qubits"`
	Status string `json:"status"`
}

type gatePayload struct {
	Kind   string  `json:"kind"`
	Qubits []int   `json:"qubits"`
	Angle  float64 `json:"angle,omitempty"`
}

type jobRequest struct {
	Device  string        `json:"device"`
	Hub     string        `json:"hub,omitempty"`
	Group   string        `json:"group,omitempty"`
	Project string        `json:"project,omitempty"`
	NQubits int           `json:"n_qubits"`
	Shots   int           `json:"shots"`
	Gates   []gatePayload `json:"gates"`
}

type jobResponse struct {
	Counts map[string]int `json:"counts"`
	Shots  int            `json:"shots"`
}

// Authenticate verifies the credentials against the account endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	var acct struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, "/v1/account", "account", &acct); err != nil {
		return err
	}
	c.logger.Debug("provider authentication succeeded", zap.String("account", acct.ID))
	return nil
}

// ResolveDevice looks the device up in the provider catalog.
func (c *Client) ResolveDevice(ctx context.Context, device string) error {
	var dev deviceResponse
	if err := c.get(ctx, "/v1/devices/"+device, "device", &dev); err != nil {
		return err
	}
	c.logger.Debug("provider device resolved",
		zap.String("device", dev.Name),
		zap.Int("qubits", dev.Qubits),
		zap.String("status", dev.Status))
	return nil
}

// RunJob submits a circuit for execution and returns the measurement counts.
func (c *Client) RunJob(ctx context.Context, device string, circ circuit.Circuit, shots int) (domain.Counts, error) {
	gates := make([]gatePayload, len(circ.Gates))
	for i, g := range circ.Gates {
		gates[i] = gatePayload{Kind: string(g.Kind), Qubits: g.Qubits, Angle: g.Angle}
	}
	req := jobRequest{
		Device:  device,
		Hub:     c.hub,
		Group:   c.group,
		Project: c.project,
		NQubits: circ.NQubits,
		Shots:   shots,
		Gates:   gates,
	}

	var resp jobResponse
	if err := c.post(ctx, "/v1/jobs", "jobs", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Counts) == 0 {
		metrics.ProviderRequestsTotal.WithLabelValues("jobs", "error").Inc()
		return nil, fmt.Errorf("empty counts in job response: %w", domain.ErrExecution)
	}

	counts := domain.Counts(resp.Counts)
	c.logger.Debug("provider job completed",
		zap.String("device", device),
		zap.Int("shots", counts.TotalShots()),
		zap.Int("outcomes", len(counts)))
	return counts, nil
}

func (c *Client) get(ctx context.Context, path, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	return c.do(req, endpoint, out)
}

func (c *Client) post(ctx context.Context, path, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, endpoint, out)
}

// do sends the request with the bearer token, records transport metrics and
// decodes the JSON response body into out.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		detail := readErrorDetail(resp.Body)
		if detail != "" {
			return fmt.Errorf("%s request returned status %d: %s", endpoint, resp.StatusCode, detail)
		}
		return fmt.Errorf("%s request returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// readErrorDetail extracts the "detail" field from a JSON error body.
func readErrorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
