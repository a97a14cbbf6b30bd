package auth

import "errors"

var (
	InvalidConfigErr    = errors.New("invalid provider config")
	MissingExchangerErr = errors.New("token exchanger is required")
)
