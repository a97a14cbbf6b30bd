package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/token-relay/oauthmodel"
	"github.com/rs/zerolog/log"
)

const headerRequestID = "X-Request-ID"

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler) // Call the middleware function
	}
	return chainedHandler
}

// StandardMiddleware wraps every route, including the mux's own 404/405
// responses, so CORS headers are present on all of them.
func (s *Server) StandardMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.CorsMiddleware,
	}
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(headerRequestID, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		event := log.Info()
		if rec.status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic")
				writeJSONError(w, oauthmodel.MessageInternal, nil, http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// CorsMiddleware applies the configured cross-origin policy. With the
// default "*" origin every response allows any origin, method and header,
// and advertises credentials. A credentialed request (Cookie header) or a
// preflight that names its Origin gets that origin echoed back, since
// browsers refuse "*" together with credentials.
func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	allowedOrigins := s.config.GetAllowedOrigins()
	allowCredentials := s.config.GetAllowCredentials()

	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		isPreflight := r.Method == http.MethodOptions

		allowOrigin := ""
		switch {
		case origin != "" && allowedOrigins.IsAllowedOrigin(origin):
			allowOrigin = origin
		case allowedOrigins.AllowsAll():
			allowOrigin = "*"
			if origin != "" && allowCredentials && (isPreflight || r.Header.Get("Cookie") != "") {
				allowOrigin = origin
			}
		}

		// Origin not allowed - no CORS headers, the browser will block
		if allowOrigin == "" {
			next(w, r)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if allowOrigin != "*" {
			h.Add("Vary", "Origin")
		}
		if allowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		h.Set("Access-Control-Allow-Methods", s.config.GetAllowedMethods())

		allowHeaders := s.config.GetAllowedHeaders()
		if requested := r.Header.Get("Access-Control-Request-Headers"); isPreflight && requested != "" && allowHeaders == "*" {
			allowHeaders = requested
		}
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if isPreflight {
			h.Set("Access-Control-Max-Age", s.config.GetMaxAge())
		}

		next(w, r)
	}
}
