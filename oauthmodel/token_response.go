package oauthmodel

// TokenResponse is what the relay returns to the browser on success.
// Both fields are passed through from the provider; a token the provider
// omitted is encoded as null rather than failing the exchange.
type TokenResponse struct {
	// AccessToken grants API access.
	// Example: "eyJraWQiOiJ..."
	AccessToken *string `json:"access_token"`

	// IdToken carries the authenticated identity claims (OIDC).
	// Example: "eyJraWQiOiJ..."
	IdToken *string `json:"id_token"`
}

// ErrorResponse is the body of every failed exchange.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

// Error messages returned to callers.
const (
	MessageMissingCode         = "Authorization code is missing"
	MessageMalformedRequest    = "Malformed request body"
	MessageRetrieveFailed      = "Failed to retrieve token"
	MessageProviderUnreachable = "Failed to reach identity provider"
	MessageInternal            = "Internal server error"
	MessageNotFound            = "Not found"
	MessageMethodNotAllowed    = "Method not allowed"
)
