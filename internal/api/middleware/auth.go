package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// AccountIDHeader заголовок с id аккаунта, который выставляет шлюз аутентификации
const AccountIDHeader = "X-Account-ID"

const (
	msgMissingAccountID = "отсутствует ID аккаунта"
	msgInvalidAccountID = "некорректный ID аккаунта"
	msgOperatorOnly     = "операция доступна только оператору"
)

type accountKey struct{}

// WithAccountID кладёт id аккаунта в контекст
func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, accountKey{}, id)
}

// GetAccountID id аккаунта из контекста (выставляется Auth)
func GetAccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountKey{}).(uuid.UUID)
	return id, ok
}

// Auth требует заголовок X-Account-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(AccountIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingAccountID)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidAccountID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), id)))
	})
}

// Operator пропускает только аккаунты из списка операторов
// Ставится после Auth
func Operator(operators []uuid.UUID) func(http.Handler) http.Handler {
	allowed := make(map[uuid.UUID]struct{}, len(operators))
	for _, id := range operators {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetAccountID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingAccountID)
				return
			}
			if _, ok := allowed[id]; !ok {
				handlers.RespondForbidden(w, msgOperatorOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
