package config

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const tokenPath = "/oauth2/token"

// Provider holds the identity provider credentials. All four values are
// required; the relay refuses to start without them.
type Provider struct {
	ClientID      string        `env:"CLIENT_ID,required,notEmpty"`
	ClientSecret  string        `env:"CLIENT_SECRET,required,notEmpty"`
	RedirectURI   string        `env:"REDIRECT_URI,required,notEmpty"`
	CognitoDomain string        `env:"COGNITO_DOMAIN,required,notEmpty"`
	Timeout       time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

func (p *Provider) normalise() {
	p.CognitoDomain = strings.TrimRight(strings.TrimSpace(p.CognitoDomain), "/")
}

// GetTokenURL returns {COGNITO_DOMAIN}/oauth2/token.
func (p Provider) GetTokenURL() string {
	return p.CognitoDomain + tokenPath
}

func (p Provider) GetProviderTimeout() time.Duration {
	return p.Timeout
}

// GetOAuth2Config describes the provider client. Credentials are sent in the
// form body, never as basic auth.
func (p Provider) GetOAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.GetTokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
