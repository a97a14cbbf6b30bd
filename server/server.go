package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/token-relay/auth"
	"github.com/jrsteele09/token-relay/internal/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux            *http.ServeMux
	handler        http.Handler
	routes         []string
	allowedMethods map[string][]string // route path -> registered methods
	config         config.Config
	exchange       *auth.ExchangeService
}

// New wires the token exchange service to the HTTP surface. The exchanger
// performs the outbound provider call; see provider.Client.
func New(c config.Config, exchanger auth.TokenExchanger) (*Server, error) {
	exchangeService, err := auth.NewExchangeService(c.GetOAuth2Config(), exchanger)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create exchange service: %w", err)
	}

	s := &Server{
		mux:            http.NewServeMux(),
		config:         c,
		exchange:       exchangeService,
		allowedMethods: make(map[string][]string),
	}

	s.initRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.StandardMiddleware()...)
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	if method, path, ok := strings.Cut(pattern, " "); ok && path != RouteAnyPath {
		s.allowedMethods[path] = append(s.allowedMethods[path], method)
	}
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.config.IsDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
