// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/validation"
)

// ValidateItemIDMiddleware validates that the id URL parameter is present and
// matches the item id format (purchase timestamp + wear value).
// Returns 400 Bad Request if the item ID is missing or malformed.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateItemIDMiddleware)
//	    r.Get("/", handler.GetItem)
//	    r.Post("/sell", handler.SellItem)
//	})
func ValidateItemIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid item ID is required", "")
			return
		}

		if err := validation.ValidateItemID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid item ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
