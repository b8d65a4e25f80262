package context

import (
	"context"
	"net/http"

	"github.com/lucidbank/lcbridge/internal/models"
)

type contextKey string

const (
	authenticatedOfficerContextKey = contextKey("authenticatedOfficer")
)

func ContextSetAuthenticatedOfficer(r *http.Request, officer *models.Officer) *http.Request {
	ctx := context.WithValue(r.Context(), authenticatedOfficerContextKey, officer)
	return r.WithContext(ctx)
}

func ContextGetAuthenticatedOfficer(r *http.Request) *models.Officer {
	officer, ok := r.Context().Value(authenticatedOfficerContextKey).(*models.Officer)
	if !ok {
		return nil
	}

	return officer
}
