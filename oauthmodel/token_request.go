package oauthmodel

import (
	"net/url"
	"strings"
)

// TokenRequest holds the parameters sent to the identity provider's token
// endpoint. Everything except Code comes from process configuration.
type TokenRequest struct {
	// GrantType is always "authorization_code".
	GrantType GrantType

	// ClientID identifies the relay to the identity provider.
	// Source: CLIENT_ID
	ClientID string

	// ClientSecret is the confidential credential the browser never sees.
	// Source: CLIENT_SECRET
	// Security: Never log or expose this value
	ClientSecret string

	// Code is the authorization code supplied by the caller.
	// Usage: Exchanged once for tokens, then becomes invalid
	Code string

	// RedirectURI must match the URI used in the authorization request.
	// Source: REDIRECT_URI
	RedirectURI string
}

// NewTokenRequest builds an authorization_code token request.
func NewTokenRequest(clientID, clientSecret, redirectURI, code string) TokenRequest {
	return TokenRequest{
		GrantType:    AuthorizationCodeGrant,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Code:         code,
		RedirectURI:  redirectURI,
	}
}

// Encode serialises the request as application/x-www-form-urlencoded.
// Unlike url.Values.Encode the field order is fixed:
// grant_type, client_id, client_secret, code, redirect_uri.
func (t TokenRequest) Encode() string {
	fields := [][2]string{
		{"grant_type", string(t.GrantType)},
		{"client_id", t.ClientID},
		{"client_secret", t.ClientSecret},
		{"code", t.Code},
		{"redirect_uri", t.RedirectURI},
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f[1]))
	}
	return b.String()
}
