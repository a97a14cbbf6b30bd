package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/token-relay/internal/errors"
	"github.com/jrsteele09/token-relay/internal/utils"
	"github.com/jrsteele09/token-relay/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxRequestSize  = 1 << 20
)

// TokenExchangeHandler exchanges the authorization code in a {"code": ...}
// body for the provider's access and ID tokens.
func (s *Server) TokenExchangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.ExchangeRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			log.Warn().Err(err).Msg("Malformed token exchange request")
			writeJSONError(w, oauthmodel.MessageMalformedRequest, utils.Ptr(err.Error()), http.StatusBadRequest)
			return
		}

		tokens, err := s.exchange.Exchange(r.Context(), req)
		if err != nil {
			writeExchangeError(w, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeJSON(w, tokens, http.StatusOK)
	}
}

// PreflightHandler answers OPTIONS on any path. CorsMiddleware has already
// set the access-control headers.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "OK", http.StatusOK)
	}
}

// NotFoundHandler catches every request no other route matched. A known
// path requested with the wrong method gets 405 and an Allow header.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if methods, ok := s.allowedMethods[r.URL.Path]; ok {
			w.Header().Set("Allow", strings.Join(methods, ", ")+", "+http.MethodOptions)
			writeJSONError(w, oauthmodel.MessageMethodNotAllowed, nil, http.StatusMethodNotAllowed)
			return
		}
		writeJSONError(w, oauthmodel.MessageNotFound, nil, http.StatusNotFound)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}

// Helper functions

// writeExchangeError maps exchange failures onto the relay's error bodies.
// A missing code and a provider rejection are reported with status 200;
// only transport failures use a 5xx.
func writeExchangeError(w http.ResponseWriter, err error) {
	var retrieveErr *oauth2.RetrieveError

	switch {
	case apperrors.Is(err, apperrors.ErrMissingCode):
		writeJSONError(w, oauthmodel.MessageMissingCode, nil, http.StatusOK)

	case apperrors.As(err, &retrieveErr):
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		log.Warn().Err(err).Int("provider_status", status).Msg("Failed to retrieve token")
		writeJSONError(w, oauthmodel.MessageRetrieveFailed, utils.Ptr(string(retrieveErr.Body)), http.StatusOK)

	case apperrors.Is(err, apperrors.ErrProviderUnreachable):
		log.Err(err).Msg("Identity provider unreachable")
		writeJSONError(w, oauthmodel.MessageProviderUnreachable, utils.Ptr(err.Error()), http.StatusBadGateway)

	default:
		log.Err(err).Msg("Token exchange failed")
		writeJSONError(w, oauthmodel.MessageInternal, nil, http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes a size-limited JSON body into dst. The body must be
// exactly one JSON object: an empty body, invalid JSON, a top-level null or
// non-object, a field of the wrong type, or data after the object is
// reported as ErrMalformedRequest.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedRequest, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return fmt.Errorf("%w: body must be a JSON object", apperrors.ErrMalformedRequest)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedRequest, err)
	}
	if err := dec.Decode(&json.RawMessage{}); !apperrors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", apperrors.ErrMalformedRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, body any, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, message string, details *string, statusCode int) {
	writeJSON(w, oauthmodel.ErrorResponse{
		Error:   message,
		Details: details,
	}, statusCode)
}
