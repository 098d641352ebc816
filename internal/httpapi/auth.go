package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of an access token issued by the
// authentication service.
type AccessClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// bearerAuth verifies an HS256 access token and takes the caller identity
// from its id claim. The X-User-Id header is ignored on this path.
func bearerAuth(key []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, "Missing authentication")
				return
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			claims := &AccessClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.ID == "" {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, claims.ID)))
		})
	}
}

// identity picks token verification when a key is configured and the
// gateway-set header otherwise.
func (s *Server) identity() func(http.Handler) http.Handler {
	if len(s.tokenKey) > 0 {
		return bearerAuth(s.tokenKey)
	}
	return requireUser
}
