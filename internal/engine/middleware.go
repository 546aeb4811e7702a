package engine

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/xela07ax/hr-dashboard-aggregator/internal/infra"
)

// TracingMiddleware инициализирует Trace-ID для каждого запроса.
// Тот же ID уходит заголовком X-Trace-ID во все вызовы HR-бэкенда.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Пытаемся достать ID из заголовка (если пришел от фронта/прокси)
		traceID := r.Header.Get("X-Trace-ID")

		// 2. Если его нет - генерируем новый
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := infra.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
