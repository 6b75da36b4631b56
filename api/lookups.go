package api

import (
	"encoding/json"
	"net/http"

	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/repository"
)

// LookupsHandler serves the flat reference tables. These are read-mostly and
// go straight to the repository.
type LookupsHandler struct {
	lookups repository.LookupRepo
}

func NewLookupsHandler(lookups repository.LookupRepo) *LookupsHandler {
	return &LookupsHandler{lookups: lookups}
}

func (h *LookupsHandler) writeLookups(w http.ResponseWriter, items []models.Lookup, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Lookup{}
	}
	writeJSON(w, items, http.StatusOK)
}

func (h *LookupsHandler) Departments(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListDepartments(r.Context())
	h.writeLookups(w, items, err)
}

func (h *LookupsHandler) RolesByDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid department id", http.StatusBadRequest)
		return
	}

	roles, err := h.lookups.ListRolesByDepartment(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	writeJSON(w, roles, http.StatusOK)
}

func (h *LookupsHandler) DepartmentByRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid role id", http.StatusBadRequest)
		return
	}

	dept, err := h.lookups.GetDepartmentByRole(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if dept == nil {
		http.Error(w, "role not found", http.StatusNotFound)
		return
	}

	writeJSON(w, dept, http.StatusOK)
}

func (h *LookupsHandler) Genres(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListGenres(r.Context())
	h.writeLookups(w, items, err)
}

func (h *LookupsHandler) Classes(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListClasses(r.Context())
	h.writeLookups(w, items, err)
}

func (h *LookupsHandler) Formats(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListFormats(r.Context())
	h.writeLookups(w, items, err)
}

func (h *LookupsHandler) UserTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListUserTypes(r.Context())
	h.writeLookups(w, items, err)
}

type createUserTypeRequest struct {
	Name string `json:"name"`
}

func (h *LookupsHandler) CreateUserType(w http.ResponseWriter, r *http.Request) {
	var req createUserTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	id, err := h.lookups.CreateUserType(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, models.Lookup{ID: id, Name: req.Name}, http.StatusCreated)
}

func (h *LookupsHandler) ApplicationStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := h.lookups.ListApplicationStatuses(r.Context())
	h.writeLookups(w, items, err)
}
