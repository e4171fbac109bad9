package middleware

import (
	"context"
	"net/http"

	"github.com/paoquentinho/storefront/internal/users"
	"github.com/paoquentinho/storefront/pkg/logger"
)

type contextKey string

const ctxUserID contextKey = "user_id"

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

type currentUserReader interface {
	CurrentUser() *users.User
}

// Session tags the request with the storefront's logged-in user, when
// there is one, so downstream logs carry user_id.
func Session(session currentUserReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}
			user := session.CurrentUser()
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUserID(r.Context(), user.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
