package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/domain/circuit"
	"github.com/qirion-cloud/qaoad/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEvaluationMetrics()
	os.Exit(m.Run())
}

func TestClient_Authenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/account" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "acct-1"})
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  zap.NewNop(),
	})

	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
}

func TestClient_Authenticate_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid token"})
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "bad-token",
		Logger:  zap.NewNop(),
	})

	err := c.Authenticate(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "invalid token") {
		t.Errorf("expected error detail to surface, got %q", err.Error())
	}
}

func TestClient_ResolveDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/devices/qpu-west-7" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deviceResponse{Name: "qpu-west-7", Qubits: 27, Status: "online"})
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  zap.NewNop(),
	})

	if err := c.ResolveDevice(context.Background(), "qpu-west-7"); err != nil {
		t.Fatalf("ResolveDevice failed: %v", err)
	}
}

func TestClient_ResolveDevice_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  zap.NewNop(),
	})

	if err := c.ResolveDevice(context.Background(), "no-such-device"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestClient_RunJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req jobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode job request: %v", err)
		}
		if req.Device != "qpu-west-7" {
			t.Errorf("device = %q, expected qpu-west-7", req.Device)
		}
		if req.Shots != 100 {
			t.Errorf("shots = %d, expected 100", req.Shots)
		}
		if req.NQubits != 2 {
			t.Errorf("n_qubits = %d, expected 2", req.NQubits)
		}
		if len(req.Gates) != 4 {
			t.Errorf("gates = %d, expected 4", len(req.Gates))
		}
		if req.Gates[0].Kind != "h" || req.Gates[0].Qubits[0] != 0 {
			t.Errorf("unexpected first gate: %+v", req.Gates[0])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobResponse{
			Counts: map[string]int{"00": 52, "11": 48},
			Shots:  100,
		})
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Hub:     "hub-a",
		Group:   "group-b",
		Project: "proj-c",
		Logger:  zap.NewNop(),
	})

	circ := circuit.Circuit{
		NQubits: 2,
		Gates: []circuit.Gate{
			circuit.H(0),
			circuit.H(1),
			circuit.CX(0, 1),
			circuit.Measure(),
		},
	}

	counts, err := c.RunJob(context.Background(), "qpu-west-7", circ, 100)
	if err != nil {
		t.Fatalf("RunJob failed: %v", err)
	}
	if counts.TotalShots() != 100 {
		t.Errorf("total shots = %d, expected 100", counts.TotalShots())
	}
	if counts["00"] != 52 || counts["11"] != 48 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestClient_RunJob_EmptyCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobResponse{Counts: map[string]int{}, Shots: 0})
	}))
	defer server.Close()

	c := NewClient(&Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Logger:  zap.NewNop(),
	})

	circ := circuit.Circuit{NQubits: 1, Gates: []circuit.Gate{circuit.Measure()}}
	if _, err := c.RunJob(context.Background(), "qpu-west-7", circ, 10); err == nil {
		t.Fatal("expected error for empty counts")
	}
}
