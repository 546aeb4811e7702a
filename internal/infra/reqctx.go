package infra

import "context"

// Тип для ключа в контексте (избегаем коллизий)
type ctxKey string

const (
	traceIDKey     ctxKey = "trace_id"
	bearerTokenKey ctxKey = "bearer_token"
	userIDKey      ctxKey = "user_id"
)

// EmptyTraceID отдается, если запрос пришел без трассировки.
const EmptyTraceID = "00000000-0000-0000-0000-000000000000"

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID безопасно достает ID в любом месте кода
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok && id != "" {
		return id
	}
	return EmptyTraceID
}

// WithBearerToken сохраняет токен вызывающего, чтобы пробросить его в HR-бэкенд.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
