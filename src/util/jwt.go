package util

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paisa-server/src/models"
)

// TokenClaims is the payload carried by both access and refresh tokens.
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(user *models.User) (string, error) {
	return generateToken(user, os.Getenv("JWT_ACCESS_SECRET"), accessTokenTTL())
}

func GenerateRefreshToken(user *models.User) (string, error) {
	return generateToken(user, os.Getenv("JWT_REFRESH_SECRET"), refreshTokenTTL())
}

func VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, os.Getenv("JWT_ACCESS_SECRET"))
}

func VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return verifyToken(tokenString, os.Getenv("JWT_REFRESH_SECRET"))
}

// RefreshTokenExpiry is the expiry stamped on the stored refresh token row.
// It matches the TTL baked into the refresh JWT itself.
func RefreshTokenExpiry() time.Time {
	return time.Now().Add(refreshTokenTTL())
}

func generateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func verifyToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func accessTokenTTL() time.Duration {
	return ttlFromEnv("JWT_ACCESS_EXPIRY", 15*time.Minute)
}

func refreshTokenTTL() time.Duration {
	return ttlFromEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour)
}

func ttlFromEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
