package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/retry"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
)

// TokenPath is the OAuth2 client-credentials endpoint.
const TokenPath = "/v1/security/oauth2/token"

// tokenExpiryMargin is subtracted from expires_in so a token is never used
// in its last minute.
const tokenExpiryMargin = 60 * time.Second

// ErrMissingCredentials is returned when no client id or secret is configured.
var ErrMissingCredentials = errors.New("missing Amadeus API credentials")

// TokenConfig configures a TokenSource.
type TokenConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Clock        timeutil.Clock
	Retry        *retry.Config
	Logger       *logger.Logger
}

// TokenSource caches the bearer token and refreshes it on expiry.
// Concurrent callers that find the cache stale share a single fetch.
type TokenSource struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	clock        timeutil.Clock
	retry        retry.Config
	log          *logger.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// NewTokenSource creates a TokenSource.
func NewTokenSource(cfg TokenConfig) *TokenSource {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	policy := retry.TokenEndpointConfig
	if cfg.Retry != nil {
		policy = *cfg.Retry
	}
	policy.RetryIf = retryableTokenError
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("token request failed, retrying")
	}

	return &TokenSource{
		httpClient:   httpClient,
		tokenURL:     strings.TrimRight(cfg.BaseURL, "/") + TokenPath,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		clock:        clock,
		retry:        policy,
		log:          log,
	}
}

// Token returns a valid bearer token, fetching a new one when needed.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.cached(); ok {
		return token, nil
	}

	// The shared fetch must not die with whichever caller started it.
	ch := s.group.DoChan("token", func() (interface{}, error) {
		if token, ok := s.cached(); ok {
			return token, nil
		}
		return s.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached token, e.g. after the API rejected it.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || !s.clock.Now().Before(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	tok, err := retry.DoWithResult(ctx, func() (tokenResponse, error) {
		return s.fetch(ctx)
	}, s.retry)
	if err != nil {
		return "", err
	}

	expiresAt := s.clock.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)

	s.mu.Lock()
	s.token = tok.AccessToken
	s.expiresAt = expiresAt
	s.mu.Unlock()

	s.log.Debug().Time("expires_at", expiresAt).Msg("fetched access token")
	return tok.AccessToken, nil
}

func (s *TokenSource) fetch(ctx context.Context) (tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, retry.NewPermanent(fmt.Errorf("build token request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, domain.NewProviderTransportError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tokenResponse{}, parseError(resp)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return tokenResponse{}, domain.NewProviderTransportError(ProviderName, fmt.Errorf("decode token response: %w", err))
	}
	if tok.AccessToken == "" {
		return tokenResponse{}, domain.NewProviderError(ProviderName, http.StatusBadGateway, "token response without access_token")
	}
	return tok, nil
}

// retryableTokenError retries transport failures and 5xx answers only.
func retryableTokenError(err error) bool {
	pe, ok := domain.AsProviderError(err)
	return ok && pe.IsRetryable()
}
