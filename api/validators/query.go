package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
)

// QueryString returns the trimmed query parameter, cut to maxLen bytes.
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}

// PathParam returns a required chi URL parameter.
func PathParam(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "path parameter is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
