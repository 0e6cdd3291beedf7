package middleware

import (
	"context"
	"net/http"
	"strings"

	"pgfinder/auth"
	"pgfinder/globals"
	"pgfinder/utils"

	"github.com/julienschmidt/httprouter"
)

// Authenticate rejects requests without a valid bearer token before any
// other processing and stores the admin id in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), globals.AdminIDKey, claims.AdminID)
		next(w, r.WithContext(ctx), ps)
	}
}
