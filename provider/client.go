package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/token-relay/internal/errors"
	"github.com/jrsteele09/token-relay/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	maxResponseSize = 1 << 20
)

// Client talks to the identity provider's token endpoint. It is safe for
// concurrent use and holds no per-request state.
type Client struct {
	endpoint   oauth2.Endpoint
	httpClient *http.Client
	timeout    time.Duration
}

// New creates a token endpoint client. A nil httpClient uses
// http.DefaultClient. A zero timeout leaves the call bounded only by ctx.
func New(cfg *oauth2.Config, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		timeout:    timeout,
	}
}

// TokenURL returns the endpoint the client posts to.
func (c *Client) TokenURL() string {
	return c.endpoint.TokenURL
}

// Exchange posts the token request and returns the provider's tokens.
// Response bodies are capped at 1 MiB; anything beyond is dropped with a
// warning.
//
// A non-200 response yields an error wrapping both ErrProviderRejected and an
// *oauth2.RetrieveError carrying the raw body. Network failures and timeouts
// wrap ErrProviderUnreachable. The call is never retried.
func (c *Client) Exchange(ctx context.Context, tokenReq oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.TokenURL, strings.NewReader(tokenReq.Encode()))
	if err != nil {
		return nil, fmt.Errorf("[provider Exchange] %w: %w", apperrors.ErrProviderUnreachable, err)
	}
	req.Header.Set("Content-Type", contentTypeForm)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[provider Exchange] %w: %w", apperrors.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("[provider Exchange] reading response: %w: %w", apperrors.ErrProviderUnreachable, err)
	}
	if len(body) > maxResponseSize {
		body = body[:maxResponseSize]
		log.Warn().
			Int("status", resp.StatusCode).
			Int("limit", maxResponseSize).
			Msg("Token endpoint response truncated")
	}

	log.Debug().
		Str("token_url", c.endpoint.TokenURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Token endpoint responded")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[provider Exchange] %w: %w", apperrors.ErrProviderRejected, &oauth2.RetrieveError{
			Response: resp,
			Body:     body,
		})
	}

	var tokens oauthmodel.TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("[provider Exchange] %w: %w", apperrors.ErrInvalidProviderResponse, &oauth2.RetrieveError{
			Response: resp,
			Body:     body,
		})
	}
	return &tokens, nil
}
