package evalcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/qirion-cloud/qaoad/internal/db"
	"github.com/qirion-cloud/qaoad/internal/domain"
	"github.com/qirion-cloud/qaoad/internal/usecase/evaluate"
)

// fakeStore is an in-memory kv store.
type fakeStore struct {
	data    map[string][]byte
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (s *fakeStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.lastTTL = ttl
	return nil
}

// fakeEvaluator counts calls and returns a fixed expectation.
type fakeEvaluator struct {
	calls       int
	expectation float64
	err         error
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, req evaluate.Request) (evaluate.Evaluation, error) {
	f.calls++
	if f.err != nil {
		return evaluate.Evaluation{}, f.err
	}
	return evaluate.Evaluation{Expectation: f.expectation, Shots: req.Shots}, nil
}

func cacheCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_eval_cache_total"},
		[]string{"result"},
	)
}

func testRequest(t *testing.T, gamma float64) evaluate.Request {
	t.Helper()

	term, err := domain.NewPauliTerm("ZZ", []int{0, 1})
	if err != nil {
		t.Fatalf("NewPauliTerm: %v", err)
	}
	cost, err := domain.NewHamiltonian([]domain.PauliTerm{term}, []float64{1}, 1, 0)
	if err != nil {
		t.Fatalf("NewHamiltonian: %v", err)
	}
	params, err := domain.NewCircuitParams(cost, domain.XMixerHamiltonian(2), 1)
	if err != nil {
		t.Fatalf("NewCircuitParams: %v", err)
	}
	return evaluate.Request{
		Params: params,
		Angles: domain.Angles{Betas: []float64{0.3}, Gammas: []float64{gamma}},
		Shots:  100,
	}
}

func TestCachedEvaluator_MissThenHit(t *testing.T) {
	inner := &fakeEvaluator{expectation: 0.75}
	store := newFakeStore()
	cached := New(inner, store, domain.BackendSamplerLocal, time.Hour, cacheCounter(), zap.NewNop())

	req := testRequest(t, 0.5)

	first, err := cached.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("first Evaluate failed: %v", err)
	}
	if first.Cached {
		t.Error("first evaluation must be a miss")
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
	if store.lastTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", store.lastTTL)
	}

	second, err := cached.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("second Evaluate failed: %v", err)
	}
	if !second.Cached {
		t.Error("second evaluation must be a hit")
	}
	if second.Expectation != 0.75 {
		t.Errorf("cached expectation = %f, want 0.75", second.Expectation)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 after hit", inner.calls)
	}
}

func TestCachedEvaluator_DifferentAnglesDifferentKeys(t *testing.T) {
	inner := &fakeEvaluator{expectation: 1}
	store := newFakeStore()
	cached := New(inner, store, domain.BackendSamplerLocal, time.Hour, cacheCounter(), zap.NewNop())

	if _, err := cached.Evaluate(context.Background(), testRequest(t, 0.1)); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if _, err := cached.Evaluate(context.Background(), testRequest(t, 0.2)); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 for distinct angles", inner.calls)
	}
	if len(store.data) != 2 {
		t.Errorf("cache entries = %d, want 2", len(store.data))
	}
}

func TestCachedEvaluator_KindSeparatesEntries(t *testing.T) {
	store := newFakeStore()
	innerA := &fakeEvaluator{expectation: 1}
	innerB := &fakeEvaluator{expectation: 2}

	cachedA := New(innerA, store, domain.BackendStatevector, time.Hour, cacheCounter(), zap.NewNop())
	cachedB := New(innerB, store, domain.BackendSamplerLocal, time.Hour, cacheCounter(), zap.NewNop())

	req := testRequest(t, 0.5)
	if _, err := cachedA.Evaluate(context.Background(), req); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	res, err := cachedB.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Cached {
		t.Error("a different backend kind must not hit the other kind's entry")
	}
	if res.Expectation != 2 {
		t.Errorf("expectation = %f, want 2", res.Expectation)
	}
}

func TestCachedEvaluator_StoreFailuresFallThrough(t *testing.T) {
	inner := &fakeEvaluator{expectation: 0.25}
	store := newFakeStore()
	store.getErr = errors.New("connection reset")
	store.setErr = errors.New("connection reset")
	cached := New(inner, store, domain.BackendSamplerLocal, time.Hour, cacheCounter(), zap.NewNop())

	res, err := cached.Evaluate(context.Background(), testRequest(t, 0.5))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Expectation != 0.25 {
		t.Errorf("expectation = %f, want 0.25", res.Expectation)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedEvaluator_CorruptEntryIsMiss(t *testing.T) {
	inner := &fakeEvaluator{expectation: 0.5}
	store := newFakeStore()
	cached := New(inner, store, domain.BackendSamplerLocal, time.Hour, cacheCounter(), zap.NewNop())

	req := testRequest(t, 0.5)
	if _, err := cached.Evaluate(context.Background(), req); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	for key := range store.data {
		store.data[key] = []byte{1, 2, 3} // truncated
	}

	res, err := cached.Evaluate(context.Background(), req)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Cached {
		t.Error("corrupt entry must not count as a hit")
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachedEvaluator_InnerErrorNotCached(t *testing.T) {
	inner := &fakeEvaluator{err: errors.New("device offline")}
	store := newFakeStore()
	cached := New(inner, store, domain.BackendSamplerRemote, time.Hour, cacheCounter(), zap.NewNop())

	if _, err := cached.Evaluate(context.Background(), testRequest(t, 0.5)); err == nil {
		t.Fatal("expected inner error")
	}
	if len(store.data) != 0 {
		t.Errorf("cache entries = %d, want 0 after failure", len(store.data))
	}
}
