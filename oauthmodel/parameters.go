package oauthmodel

import (
	apperrors "github.com/jrsteele09/token-relay/internal/errors"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Used in: Authorization Code Flow, the only grant the relay performs
	// Token request includes: code, client_id, client_secret, redirect_uri
	// Returns: access_token, id_token (and whatever else the provider adds)
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// ExchangeRequest is the JSON body a browser client posts to the relay.
type ExchangeRequest struct {
	// Code is the authorization code the provider redirected back to the client.
	// Required: Yes, non-empty
	// Example: "SplxlOBeZQQYbYS6WxSbIA"
	// Null and absent are both treated as missing.
	Code *string `json:"code"`
}

// GetCode returns the code, or "" when it was absent or null.
func (r ExchangeRequest) GetCode() string {
	if r.Code == nil {
		return ""
	}
	return *r.Code
}

// Validate reports ErrMissingCode when no usable code was supplied.
func (r ExchangeRequest) Validate() error {
	if r.GetCode() == "" {
		return apperrors.ErrMissingCode
	}
	return nil
}
