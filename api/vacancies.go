package api

import (
	"encoding/json"
	"net/http"

	"github.com/qri-io/jsonschema"

	"github.com/tecnitrama/backend/internal/service"
	"github.com/tecnitrama/backend/pkg/models"
)

const createVacancySchema = `{
	"type": "object",
	"required": ["project_id", "role_id"],
	"properties": {
		"project_id": {"type": "integer", "minimum": 1},
		"role_id": {"type": "integer", "minimum": 1},
		"description": {"type": "string"},
		"requirements": {"type": "string"},
		"is_visible": {"type": "boolean"}
	}
}`

type VacanciesHandler struct {
	vacancies *service.VacancyService
	schema    *jsonschema.Schema
}

func NewVacanciesHandler(vacancies *service.VacancyService) *VacanciesHandler {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(createVacancySchema), rs); err != nil {
		panic("invalid vacancy schema: " + err.Error())
	}
	return &VacanciesHandler{vacancies: vacancies, schema: rs}
}

func (h *VacanciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := validateBody(w, r, h.schema)
	if !ok {
		return
	}

	var in service.CreateVacancyInput
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	v, err := h.vacancies.CreateVacancy(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, v, http.StatusCreated)
}

func (h *VacanciesHandler) List(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.vacancies.ListVacancies(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if vacancies == nil {
		vacancies = []models.Vacancy{}
	}

	writeJSON(w, vacancies, http.StatusOK)
}

func (h *VacanciesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid vacancy id", http.StatusBadRequest)
		return
	}

	v, err := h.vacancies.GetVacancy(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, v, http.StatusOK)
}

func (h *VacanciesHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	vacancies, err := h.vacancies.ListVacanciesByProject(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if vacancies == nil {
		vacancies = []models.Vacancy{}
	}

	writeJSON(w, vacancies, http.StatusOK)
}

func (h *VacanciesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid vacancy id", http.StatusBadRequest)
		return
	}

	var in service.VacancyPatch
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	v, err := h.vacancies.UpdateVacancy(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, v, http.StatusOK)
}

func (h *VacanciesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid vacancy id", http.StatusBadRequest)
		return
	}

	if err := h.vacancies.DeleteVacancy(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
