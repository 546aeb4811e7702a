package connectors

import (
	"errors"
	"fmt"
)

// ErrDecode - ответ источника пришел, но не разбирается в ожидаемую форму.
var ErrDecode = errors.New("stats response decode failed")

// StatusError - HR-бэкенд ответил не-2xx статусом.
type StatusError struct {
	Path string
	Code int
	Body string // первые байты тела, для логов
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hr api %s returned status %d: %s", e.Path, e.Code, e.Body)
}
