package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/config"
)

func newTokenServer(t *testing.T, calls *atomic.Int64, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-" + r.PostForm.Get("client_id"),
			"expires_in":   expiresIn,
		})
	}))
}

func newTestTokenCache(baseURL string, logger *fakeExchangeLogger, accounts *fakeAccountRepo) *TokenCache {
	return NewTokenCache(config.CarrierConfig{
		BaseURL:           baseURL,
		ConnTimeout:       5 * time.Second,
		TokenSafetyMargin: 30 * time.Second,
	}, logger, accounts, testLogger())
}

func TestTokenCache_CachesUntilExpiry(t *testing.T) {
	var calls atomic.Int64
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	exchanges := &fakeExchangeLogger{}
	accounts := &fakeAccountRepo{}
	cache := newTestTokenCache(server.URL, exchanges, accounts)
	account := testAccount()

	first, err := cache.GetToken(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, "tok-key", first)

	second, err := cache.GetToken(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 1, exchanges.count())
	assert.Equal(t, 1, accounts.updateCalls)
}

func TestTokenCache_RefreshesWithinSafetyMargin(t *testing.T) {
	var calls atomic.Int64
	// Expires in 10s with a 30s margin: every call is a refresh.
	server := newTokenServer(t, &calls, 10)
	defer server.Close()

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})
	account := testAccount()

	_, err := cache.GetToken(context.Background(), account)
	require.NoError(t, err)
	_, err = cache.GetToken(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

func TestTokenCache_SeedsFromAccountRow(t *testing.T) {
	var calls atomic.Int64
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})

	account := testAccount()
	token := "persisted-token"
	expiry := time.Now().Add(time.Hour)
	account.AccessToken = &token
	account.TokenExpiresAt = &expiry

	got, err := cache.GetToken(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", got)
	assert.Equal(t, int64(0), calls.Load())
}

func TestTokenCache_ConcurrentCallersSingleExchange(t *testing.T) {
	var calls atomic.Int64
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})
	account := testAccount()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := cache.GetToken(context.Background(), account)
			assert.NoError(t, err)
			assert.Equal(t, "tok-key", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestTokenCache_RejectedExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	exchanges := &fakeExchangeLogger{}
	cache := newTestTokenCache(server.URL, exchanges, &fakeAccountRepo{})

	account := testAccount()
	account.APISecret = "a-very-confidential-value"

	_, err := cache.GetToken(context.Background(), account)
	require.Error(t, err)

	authErr, ok := application.IsAuthenticationError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")

	// The failed exchange is still on record, secret redacted.
	require.Equal(t, 1, exchanges.count())
	entry := exchanges.last()
	assert.Equal(t, http.StatusUnauthorized, entry.StatusCode)
	assert.Contains(t, entry.RequestBody, "%5Bredacted%5D")
	assert.NotContains(t, entry.RequestBody, "a-very-confidential-value")
}

func TestTokenCache_MalformedTokenResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer server.Close()

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})

	_, err := cache.GetToken(context.Background(), testAccount())
	require.Error(t, err)
	_, ok := application.IsAuthenticationError(err)
	assert.True(t, ok)
}

func TestTokenCache_PerAccountIsolation(t *testing.T) {
	var calls atomic.Int64
	server := newTokenServer(t, &calls, 3600)
	defer server.Close()

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})

	first := testAccount()
	second := testAccount()
	second.ID = 2
	second.APIKey = "other"

	tokenA, err := cache.GetToken(context.Background(), first)
	require.NoError(t, err)
	tokenB, err := cache.GetToken(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, tokenA, tokenB)
	assert.Equal(t, int64(2), calls.Load())
}

func TestTokenCache_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused

	cache := newTestTokenCache(server.URL, &fakeExchangeLogger{}, &fakeAccountRepo{})

	_, err := cache.GetToken(context.Background(), testAccount())
	require.Error(t, err)
	_, ok := application.IsTransportError(err)
	assert.True(t, ok)
}
