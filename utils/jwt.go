package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/bricker/vivial-sub000/config"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret on each use so it follows the loaded
// config rather than whatever the environment held at package init. Fallback
// to a default (not recommended in production).
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "vivial-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for the given account and device.
// The token expires after the specified duration.
func GenerateToken(accountID, email, deviceID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    accountID,
		"email":  email,
		"device": deviceID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ExtractAuthFromToken validates the token and returns the full auth
// context carried in its claims.
func ExtractAuthFromToken(tokenString string) (AuthContext, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil || !token.Valid {
		return AuthContext{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthContext{}, errors.New("invalid token claims")
	}

	auth := AuthContext{}
	auth.AccountID, _ = claims["sub"].(string)
	auth.DeviceID, _ = claims["device"].(string)
	auth.Email, _ = claims["email"].(string)
	if auth.AccountID == "" || auth.DeviceID == "" {
		return AuthContext{}, errors.New("token missing subject or device")
	}
	return auth, nil
}

// HashToken returns the hex-encoded SHA-256 digest of the token. Only the
// hash is ever stored; the raw token stays with the client.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
