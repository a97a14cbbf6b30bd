package providerfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/token-relay/auth"
	"github.com/jrsteele09/token-relay/oauthmodel"
)

var _ auth.TokenExchanger = (*FakeProvider)(nil)

// FakeProvider records every token request and answers with a canned
// response or error.
type FakeProvider struct {
	Response *oauthmodel.TokenResponse
	Err      error

	requests []oauthmodel.TokenRequest
	lock     sync.Mutex
}

func NewFakeProvider(response *oauthmodel.TokenResponse, err error) *FakeProvider {
	return &FakeProvider{Response: response, Err: err}
}

func (p *FakeProvider) Exchange(_ context.Context, tokenReq oauthmodel.TokenRequest) (*oauthmodel.TokenResponse, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.requests = append(p.requests, tokenReq)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Response, nil
}

func (p *FakeProvider) Calls() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.requests)
}

func (p *FakeProvider) Requests() []oauthmodel.TokenRequest {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]oauthmodel.TokenRequest(nil), p.requests...)
}
