package carrier

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/carrier-gateway/internal/application"
	"github.com/example/carrier-gateway/internal/config"
	"github.com/example/carrier-gateway/internal/domain"
	"golang.org/x/sync/singleflight"
)

const tokenPath = "/oauth/token"

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenCache holds one OAuth bearer token per account. Reads of a valid
// token take a shared lock; refreshes are deduplicated per account, so
// concurrent callers for one account trigger exactly one token exchange
// and unrelated accounts never wait on each other.
type TokenCache struct {
	baseURL    string
	safety     time.Duration
	httpClient *http.Client
	exchanges  application.ExchangeLogger
	accounts   application.AccountRepository
	logger     *slog.Logger

	mu     sync.RWMutex
	tokens map[int64]cachedToken
	group  singleflight.Group
}

func NewTokenCache(
	cfg config.CarrierConfig,
	exchanges application.ExchangeLogger,
	accounts application.AccountRepository,
	logger *slog.Logger,
) *TokenCache {
	return &TokenCache{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		safety:     cfg.TokenSafetyMargin,
		httpClient: &http.Client{Timeout: cfg.ConnTimeout},
		exchanges:  exchanges,
		accounts:   accounts,
		logger:     logger,
		tokens:     make(map[int64]cachedToken),
	}
}

// GetToken returns a bearer token for the account, refreshing it via a
// client-credentials exchange when the cached one is within the safety
// margin of its expiry. A failed exchange is never retried here.
func (tc *TokenCache) GetToken(ctx context.Context, account *domain.Account) (string, error) {
	if token, ok := tc.cached(account.ID); ok {
		return token, nil
	}

	// A previous process may have left a usable token on the account row.
	if account.AccessToken != nil && account.TokenExpiresAt != nil &&
		time.Now().Before(account.TokenExpiresAt.Add(-tc.safety)) {
		tc.store(account.ID, *account.AccessToken, *account.TokenExpiresAt)
		return *account.AccessToken, nil
	}

	v, err, _ := tc.group.Do(strconv.FormatInt(account.ID, 10), func() (any, error) {
		if token, ok := tc.cached(account.ID); ok {
			return token, nil
		}
		return tc.fetch(ctx, account)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (tc *TokenCache) cached(accountID int64) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	entry, ok := tc.tokens[accountID]
	if !ok || !time.Now().Before(entry.expiresAt.Add(-tc.safety)) {
		return "", false
	}
	return entry.token, true
}

func (tc *TokenCache) store(accountID int64, token string, expiresAt time.Time) {
	tc.mu.Lock()
	tc.tokens[accountID] = cachedToken{token: token, expiresAt: expiresAt}
	tc.mu.Unlock()
}

func (tc *TokenCache) fetch(ctx context.Context, account *domain.Account) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {account.APIKey},
		"client_secret": {account.APISecret},
	}
	logged := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {account.APIKey},
		"client_secret": {"[redacted]"},
	}

	endpoint := tc.baseURL + tokenPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &application.TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tc.httpClient.Do(httpReq)
	if err != nil {
		tc.logExchange(ctx, account.ID, endpoint, logged.Encode(), 0, err.Error())
		return "", &application.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	tc.logExchange(ctx, account.ID, endpoint, logged.Encode(), resp.StatusCode, string(body))

	if resp.StatusCode != http.StatusOK {
		return "", &application.AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	token, expiresAt, err := decodeTokenResponse(resp.StatusCode, body)
	if err != nil {
		return "", err
	}

	tc.store(account.ID, token, expiresAt)

	// Write-through to the account row so a restart can reuse the token.
	// The in-memory cache stays authoritative if this fails.
	if err := tc.accounts.UpdateToken(ctx, account.ID, token, expiresAt); err != nil {
		tc.logger.Warn("failed to persist refreshed token",
			"account_id", account.ID,
			"error", err,
		)
	}

	return token, nil
}

func (tc *TokenCache) logExchange(ctx context.Context, accountID int64, endpoint, requestBody string, status int, responseBody string) {
	entry := &domain.ExchangeLog{
		AccountID:    &accountID,
		Method:       http.MethodPost,
		URL:          endpoint,
		RequestBody:  requestBody,
		ResponseBody: responseBody,
		StatusCode:   status,
	}
	if err := tc.exchanges.Log(ctx, entry); err != nil {
		tc.logger.Warn("failed to record token exchange",
			"account_id", accountID,
			"error", err,
		)
	}
}
