package config

import (
	"net/http"
	"slices"
	"strings"
)

// Cors is deliberately permissive by default: every origin, method and header
// is allowed, with credentials. Narrow CORS_ALLOWED_ORIGINS in deployment.
type Cors struct {
	Origins          []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) AllowsAll() bool {
	return a.IsAllowedOrigin("*")
}

// String lists the origins in sorted order, e.g. for the startup log.
func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	slices.Sort(origins)
	return strings.Join(origins, ", ")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range c.Origins {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

// GetAllowedMethods lists every standard method, which is what "allow any
// method" means to a browser.
func (Cors) GetAllowedMethods() string {
	return strings.Join([]string{
		http.MethodDelete,
		http.MethodGet,
		http.MethodHead,
		http.MethodOptions,
		http.MethodPatch,
		http.MethodPost,
		http.MethodPut,
	}, ", ")
}

// GetAllowedHeaders returns "*"; the middleware echoes the requested headers.
func (Cors) GetAllowedHeaders() string {
	return "*"
}

func (c Cors) GetAllowCredentials() bool {
	return c.AllowCredentials
}

func (Cors) GetMaxAge() string {
	return "600"
}
