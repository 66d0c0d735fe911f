package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"paisa-server/src/util"
)

// ParseTokenFromRequest extracts and validates the access token from the
// Authorization header, returning its claims if valid.
func ParseTokenFromRequest(r *http.Request) (*util.TokenClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("No authorization header provided")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("Invalid authorization format. Use: Bearer <token>")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return nil, errors.New("No token provided")
	}

	claims, err := util.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, errors.New("Invalid or expired token")
	}
	return claims, nil
}

// JWTAuthMiddleware resolves the caller's identity before any business logic
// runs. Downstream handlers read the user id from the request context.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ParseTokenFromRequest(r)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), "user_id", claims.UserID)
		ctx = context.WithValue(ctx, "email", claims.Email)

		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}
