package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"

	"github.com/tecnitrama/backend/internal/service"
	"github.com/tecnitrama/backend/pkg/models"
)

// createProjectSchema rejects malformed create payloads before decoding;
// numeric strings for budget or dates never reach the store.
const createProjectSchema = `{
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"banner_url": {"type": "string"},
		"attachment_url": {"type": "string"},
		"budget": {"type": "number", "minimum": 0},
		"sponsors": {"type": "string"},
		"est_start_at": {"type": "integer"},
		"est_end_at": {"type": "integer"},
		"format_id": {"type": "integer"},
		"genre_ids": {"type": "array", "items": {"type": "integer"}},
		"class_ids": {"type": "array", "items": {"type": "integer"}}
	}
}`

type ProjectsHandler struct {
	projects *service.ProjectService
	schema   *jsonschema.Schema
}

func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(createProjectSchema), rs); err != nil {
		panic("invalid project schema: " + err.Error())
	}
	return &ProjectsHandler{projects: projects, schema: rs}
}

// validateBody runs the JSON Schema over the raw payload and returns it for
// decoding, or writes the 400 itself.
func validateBody(w http.ResponseWriter, r *http.Request, rs *jsonschema.Schema) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return nil, false
	}

	verrs, err := rs.ValidateBytes(r.Context(), body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if len(verrs) > 0 {
		writeJSON(w, errorResponse{Error: verrs[0].Error()}, http.StatusBadRequest)
		return nil, false
	}

	return body, true
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := validateBody(w, r, h.schema)
	if !ok {
		return
	}

	var in service.CreateProjectInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	p, err := h.projects.CreateProject(r.Context(), currentUserID(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, p, http.StatusCreated)
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, projects, http.StatusOK)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	p, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *ProjectsHandler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	projects, err := h.projects.ListProjectsByCreator(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, projects, http.StatusOK)
}

// requireOwner allows the project creator and admins.
func (h *ProjectsHandler) requireOwner(w http.ResponseWriter, r *http.Request, projectID int64) bool {
	if isAdmin(r) {
		return true
	}
	owner, err := h.projects.IsProjectOwner(r.Context(), projectID, currentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return false
	}
	if !owner {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	var in service.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	p, err := h.projects.UpdateProject(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type toggleRequest struct {
	IsActive    *bool `json:"is_active"`
	IsPublished *bool `json:"is_published"`
}

func (h *ProjectsHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		http.Error(w, "is_active is required", http.StatusBadRequest)
		return
	}

	if err := h.projects.SetProjectActive(r.Context(), id, *req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]any{"id": id, "is_active": *req.IsActive}, http.StatusOK)
}

func (h *ProjectsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsPublished == nil {
		http.Error(w, "is_published is required", http.StatusBadRequest)
		return
	}

	if err := h.projects.SetProjectPublished(r.Context(), id, *req.IsPublished); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]any{"id": id, "is_published": *req.IsPublished}, http.StatusOK)
}

func (h *ProjectsHandler) IsOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	owner, err := h.projects.IsProjectOwner(r.Context(), id, currentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]bool{"is_owner": owner}, http.StatusOK)
}

func (h *ProjectsHandler) Genres(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	genres, err := h.projects.ListGenresByProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, genres, http.StatusOK)
}

func (h *ProjectsHandler) Classes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	classes, err := h.projects.ListClassesByProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, classes, http.StatusOK)
}

func (h *ProjectsHandler) Crew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	crew, err := h.projects.GetCrewByProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if crew == nil {
		crew = []models.CrewMember{}
	}

	writeJSON(w, crew, http.StatusOK)
}

type removeCrewRequest struct {
	UserIDs []int64 `json:"user_ids"`
}

func (h *ProjectsHandler) RemoveCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	var req removeCrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	removed, err := h.projects.RemoveCrew(r.Context(), id, req.UserIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]int64{"removed": removed}, http.StatusOK)
}

func (h *ProjectsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	docs, err := h.projects.SearchProjects(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, docs, http.StatusOK)
}
