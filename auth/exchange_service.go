package auth

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/token-relay/internal/errors"
	"github.com/jrsteele09/token-relay/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// TokenExchanger performs the outbound call to the identity provider's token
// endpoint. provider.Client is the production implementation.
type TokenExchanger interface {
	Exchange(ctx context.Context, tokenReq oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error)
}

// ExchangeService trades a browser-supplied authorization code for tokens
// using credentials only the server holds. It keeps no state between calls.
type ExchangeService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	exchanger    TokenExchanger
}

func NewExchangeService(cfg *oauth2.Config, exchanger TokenExchanger) (*ExchangeService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[auth NewExchangeService] %w", InvalidConfigErr)
	}
	if exchanger == nil {
		return nil, fmt.Errorf("[auth NewExchangeService] %w", MissingExchangerErr)
	}
	return &ExchangeService{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURL,
		exchanger:    exchanger,
	}, nil
}

// Exchange validates the request and, when a code is present, makes exactly
// one call to the provider. A missing code never reaches the provider.
func (s *ExchangeService) Exchange(ctx context.Context, req oauthmodel.ExchangeRequest) (*oauthmodel.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		log.Warn().Msg("Authorization code is missing")
		return nil, err
	}

	code := req.GetCode()
	log.Info().Str("code", code).Msg("Received authorization code")

	tokenReq := oauthmodel.NewTokenRequest(s.clientID, s.clientSecret, s.redirectURI, code)
	tokens, err := s.exchanger.Exchange(ctx, tokenReq)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[auth Exchange]")
	}
	return tokens, nil
}
