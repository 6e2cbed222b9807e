// internal/handler/token.go
package handler

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/dangerclosesec/directory/internal/service"
)

type TokenHandler struct {
	service *service.TokenService
}

func NewTokenHandler(service *service.TokenService) *TokenHandler {
	return &TokenHandler{
		service: service,
	}
}

// IssueToken accepts an OAuth2 password form or a JSON body.
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input service.TokenInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid form payload")
			return
		}
		input.Username = r.PostForm.Get("username")
		input.Password = r.PostForm.Get("password")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		defer r.Body.Close()
	}

	output, err := h.service.IssueToken(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}
