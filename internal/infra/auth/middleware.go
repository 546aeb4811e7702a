package auth

import (
	"net/http"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
	"go.uber.org/zap"
)

// TokenValidator - проверка токена, которым фронтенд ходит в дашборд
type TokenValidator interface {
	VerifyToken(tokenStr string) (*domain.CustomClaims, error)
}

// NewMiddleware требует валидный токен со scope dashboard.read.
// Сам токен остается в контексте: HR-бэкенд проверяет его повторно.
func NewMiddleware(v TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := v.VerifyToken(authHeader)
			if err != nil {
				logger.Warn("auth failure", zap.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !claims.Scopes[domain.ScopeDashboardRead] {
				logger.Warn("dashboard scope missing", zap.String("user_id", claims.UserID))
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := infra.WithUserID(r.Context(), claims.UserID)
			ctx = infra.WithBearerToken(ctx, authHeader)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
