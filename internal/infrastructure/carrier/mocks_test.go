package carrier

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/example/carrier-gateway/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeExchangeLogger records every log entry in memory.
type fakeExchangeLogger struct {
	mu      sync.Mutex
	entries []domain.ExchangeLog
	err     error
}

func (f *fakeExchangeLogger) Log(_ context.Context, entry *domain.ExchangeLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeExchangeLogger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *fakeExchangeLogger) last() domain.ExchangeLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[len(f.entries)-1]
}

// fakeAccountRepo only implements what the token cache needs.
type fakeAccountRepo struct {
	mu           sync.Mutex
	updateCalls  int
	updateErr    error
	storedToken  string
	storedExpiry time.Time
}

func (f *fakeAccountRepo) Create(context.Context, *domain.Account) error { return nil }

func (f *fakeAccountRepo) FindByID(context.Context, int64) (*domain.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) List(context.Context) ([]*domain.Account, error) { return nil, nil }

func (f *fakeAccountRepo) UpdateToken(_ context.Context, _ int64, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls++
	f.storedToken = token
	f.storedExpiry = expiresAt
	return nil
}

// fakeLabelStore keeps saved documents in memory.
type fakeLabelStore struct {
	mu     sync.Mutex
	labels map[string][]byte
	err    error
}

func newFakeLabelStore() *fakeLabelStore {
	return &fakeLabelStore{labels: make(map[string][]byte)}
}

func (f *fakeLabelStore) SaveLabel(trackingNumber string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.labels[trackingNumber] = data
	return "/labels/label_" + trackingNumber + ".pdf", nil
}

func (f *fakeLabelStore) SaveDocument(trackingNumber string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.labels[trackingNumber] = data
	return "/labels/pod_" + trackingNumber + ".pdf", nil
}
