package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gracefm/config"
	"gracefm/core/auth"
	"gracefm/core/wordpress"
	"gracefm/logger"
	"gracefm/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	aggregates repository.AggregateRepository
	cms        *wordpress.Client
	cfg        *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(aggregates repository.AggregateRepository, cms *wordpress.Client, cfg *config.Config) *APIHandler {
	return &APIHandler{
		aggregates: aggregates,
		cms:        cms,
		cfg:        cfg,
	}
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", logger.ErrorField(err))
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// IdentityMiddleware resolves the identity path segment. The layer does not
// authenticate identities, but when a caller presents a Bearer token and a
// secret is configured, the token's email claim must match the addressed
// identity. Requests without a token pass through untouched.
func (h *APIHandler) IdentityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := mux.Vars(r)["identity"]
		if identity == "" {
			writeError(w, http.StatusBadRequest, "identity is required")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" && h.cfg.JWTSecret != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := auth.ParseToken(h.cfg.JWTSecret, parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims.Email != identity {
				writeError(w, http.StatusForbidden, "token does not match identity")
				return
			}
		}

		next.ServeHTTP(w, r)
	}
}
