package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims - claims токена, которым фронтенд ходит за сводкой.
type CustomClaims struct {
	UserID string          `json:"user_id"`
	Scopes map[string]bool `json:"scopes"` // "dashboard.read": true
	jwt.RegisteredClaims
}

// ScopeDashboardRead открывает доступ к сводке и ленте активности.
const ScopeDashboardRead = "dashboard.read"
