package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
)

// Заголовок с ID сотрудника, проставляется доверенным gateway
// после аутентификации; сам сервис учетные данные не проверяет
const employeeIDHeader = "X-Employee-ID"

type employeeIDKey struct{}

// Auth проверяет наличие корректного X-Employee-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(employeeIDHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Employee-ID")
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный X-Employee-ID")
			return
		}

		ctx := context.WithValue(r.Context(), employeeIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmployeeID возвращает ID сотрудника из контекста запроса
func EmployeeID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(employeeIDKey{}).(uuid.UUID)
	return id, ok
}
