package middleware

import (
	"net/http"
	"strings"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/pkg/utils"
)

// GateMiddleware guards the API behind the shared-PIN session token issued
// by the verify-pin endpoint.
type GateMiddleware struct {
	keeper *auth.GateKeeper
}

func NewGateMiddleware(keeper *auth.GateKeeper) *GateMiddleware {
	return &GateMiddleware{keeper: keeper}
}

func (m *GateMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			utils.Error(w, http.StatusUnauthorized, "Gate token required")
			return
		}

		if err := m.keeper.ValidateToken(token); err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid or expired gate token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
