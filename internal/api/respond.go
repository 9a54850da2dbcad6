package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"kembara/internal/auth"
	apperrors "kembara/internal/errors"
)

var validate = validator.New()

// decodeJSON decodes and validates a request body. Both failure modes map
// to a 400 with a generic message; field names never echo back raw input.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.BadRequest("missing or invalid fields")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError turns a service error into the wire response. Anything that
// is not an HTTPError stays internal: logged in full, reported generically.
func respondError(w http.ResponseWriter, err error) {
	code := apperrors.StatusCode(err)
	message := "internal server error"
	if httpErr, ok := err.(*apperrors.HTTPError); ok {
		message = httpErr.Message
	} else {
		log.Printf("Internal error: %v", err)
	}
	respondJSON(w, code, map[string]string{"error": message})
}

// requestUser pulls the authenticated user placed by the auth middleware.
func requestUser(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, apperrors.Unauthorized("Unauthorized"))
		return auth.User{}, false
	}
	return user, true
}
