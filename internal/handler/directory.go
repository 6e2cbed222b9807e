// internal/handler/directory.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/middleware"
	"github.com/dangerclosesec/directory/internal/service"
	"github.com/go-chi/chi/v5"
)

type DirectoryHandler struct {
	service *service.DirectoryService
}

func NewDirectoryHandler(service *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

func (h *DirectoryHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.service.ListBranches(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, branches)
}

func (h *DirectoryHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.ListSkills(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, skills)
}

// ListTeachers returns every teacher, administrative fields included.
func (h *DirectoryHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.service.ListTeachers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, teachers)
}

func (h *DirectoryHandler) TeachersByBranch(w http.ResponseWriter, r *http.Request) {
	branchID, ok := branchIDParam(w, r)
	if !ok {
		return
	}

	teachers, err := h.service.TeachersByBranch(r.Context(), branchID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, teachers)
}

// CreateTeacher handles POST /api/teachers, where the body lists every branch.
func (h *DirectoryHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	h.createTeacher(w, r, nil)
}

// CreateBranchTeacher handles POST /api/branches/{branchId}/teachers. The path
// branch is primary; body branches are additional.
func (h *DirectoryHandler) CreateBranchTeacher(w http.ResponseWriter, r *http.Request) {
	branchID, ok := branchIDParam(w, r)
	if !ok {
		return
	}
	h.createTeacher(w, r, &branchID)
}

func (h *DirectoryHandler) createTeacher(w http.ResponseWriter, r *http.Request, primary *int) {
	var input service.CreateTeacherInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	principal, _ := middleware.PrincipalFromContext(r.Context())

	output, err := h.service.CreateTeacher(r.Context(), principal, input, primary)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, output)
}

// branchIDParam writes a 404 for IDs that cannot name a branch.
func branchIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "branchId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		handleError(w, r, domain.ErrBranchNotFound)
		return 0, false
	}
	return id, true
}
