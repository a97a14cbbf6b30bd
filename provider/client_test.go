package provider_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/token-relay/internal/errors"
	"github.com/jrsteele09/token-relay/oauthmodel"
	"github.com/jrsteele09/token-relay/provider"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "CID"
	testClientSecret = "SECRET"
	testRedirectURI  = "https://app.example.com/callback"
	testCode         = "abc123"
)

type capturedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

func newProvider(t *testing.T, status int, body string, captured *capturedRequest, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if captured != nil {
			b, _ := io.ReadAll(r.Body)
			*captured = capturedRequest{
				method:      r.Method,
				path:        r.URL.Path,
				contentType: r.Header.Get("Content-Type"),
				body:        string(b),
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, timeout time.Duration) *provider.Client {
	cfg := &oauth2.Config{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RedirectURL:  testRedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  srv.URL + "/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return provider.New(cfg, srv.Client(), timeout)
}

func testTokenRequest() oauthmodel.TokenRequest {
	return oauthmodel.NewTokenRequest(testClientID, testClientSecret, testRedirectURI, testCode)
}

func TestExchangeSuccess(t *testing.T) {
	var captured capturedRequest
	srv := newProvider(t, http.StatusOK, `{"access_token":"A","id_token":"I","refresh_token":"R","expires_in":3600}`, &captured, nil)

	tokens, err := newClient(srv, time.Second).Exchange(context.Background(), testTokenRequest())
	require.NoError(t, err)
	require.NotNil(t, tokens.AccessToken)
	require.NotNil(t, tokens.IdToken)
	require.Equal(t, "A", *tokens.AccessToken)
	require.Equal(t, "I", *tokens.IdToken)

	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "/oauth2/token", captured.path)
	require.Equal(t, "application/x-www-form-urlencoded", captured.contentType)
	require.Equal(t,
		"grant_type=authorization_code&client_id=CID&client_secret=SECRET&code=abc123&redirect_uri=https%3A%2F%2Fapp.example.com%2Fcallback",
		captured.body)
}

func TestExchangeMissingTokensPassThrough(t *testing.T) {
	srv := newProvider(t, http.StatusOK, `{"token_type":"Bearer"}`, nil, nil)

	tokens, err := newClient(srv, time.Second).Exchange(context.Background(), testTokenRequest())
	require.NoError(t, err)
	require.Nil(t, tokens.AccessToken)
	require.Nil(t, tokens.IdToken)
}

func TestExchangeRejected(t *testing.T) {
	srv := newProvider(t, http.StatusBadRequest, "invalid_grant", nil, nil)

	tokens, err := newClient(srv, time.Second).Exchange(context.Background(), testTokenRequest())
	require.Nil(t, tokens)
	require.ErrorIs(t, err, apperrors.ErrProviderRejected)

	var rErr *oauth2.RetrieveError
	require.ErrorAs(t, err, &rErr)
	require.Equal(t, "invalid_grant", string(rErr.Body))
	require.Equal(t, http.StatusBadRequest, rErr.Response.StatusCode)
}

func TestExchangeRejectedBodyIsCapped(t *testing.T) {
	const limit = 1 << 20
	srv := newProvider(t, http.StatusBadRequest, strings.Repeat("x", limit+10), nil, nil)

	_, err := newClient(srv, 5*time.Second).Exchange(context.Background(), testTokenRequest())
	require.ErrorIs(t, err, apperrors.ErrProviderRejected)

	var rErr *oauth2.RetrieveError
	require.ErrorAs(t, err, &rErr)
	require.Len(t, rErr.Body, limit)
}

func TestExchangeNon200SuccessIsRejected(t *testing.T) {
	srv := newProvider(t, http.StatusCreated, `{"access_token":"A","id_token":"I"}`, nil, nil)

	_, err := newClient(srv, time.Second).Exchange(context.Background(), testTokenRequest())
	require.ErrorIs(t, err, apperrors.ErrProviderRejected)
}

func TestExchangeInvalidJSON(t *testing.T) {
	srv := newProvider(t, http.StatusOK, "<html>not json</html>", nil, nil)

	_, err := newClient(srv, time.Second).Exchange(context.Background(), testTokenRequest())
	require.ErrorIs(t, err, apperrors.ErrInvalidProviderResponse)

	var rErr *oauth2.RetrieveError
	require.ErrorAs(t, err, &rErr)
	require.Equal(t, "<html>not json</html>", string(rErr.Body))
}

func TestExchangeUnreachable(t *testing.T) {
	srv := newProvider(t, http.StatusOK, "{}", nil, nil)
	client := newClient(srv, time.Second)
	srv.Close()

	_, err := client.Exchange(context.Background(), testTokenRequest())
	require.ErrorIs(t, err, apperrors.ErrProviderUnreachable)
}

func TestExchangeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := newClient(srv, 50*time.Millisecond)
	_, err := client.Exchange(context.Background(), testTokenRequest())
	require.ErrorIs(t, err, apperrors.ErrProviderUnreachable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExchangeNoDeduplication(t *testing.T) {
	var calls int32
	srv := newProvider(t, http.StatusOK, `{"access_token":"A","id_token":"I"}`, nil, &calls)
	client := newClient(srv, time.Second)

	for i := 0; i < 2; i++ {
		_, err := client.Exchange(context.Background(), testTokenRequest())
		require.NoError(t, err)
	}
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
