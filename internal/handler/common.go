package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/directory/internal/domain"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// handleError maps domain errors to status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		branchErr     *domain.BranchNotFoundError
		validationErr *domain.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		details := validationErr.Details
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: &details})
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
	case errors.Is(err, domain.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondWithError(w, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, domain.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondWithError(w, http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, domain.ErrInactivePrincipal):
		respondWithError(w, http.StatusBadRequest, "Inactive user")
	case errors.As(err, &branchErr):
		respondWithError(w, http.StatusNotFound, branchErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		respondWithError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, domain.ErrConflict):
		respondWithError(w, http.StatusConflict, "Conflict")
	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
