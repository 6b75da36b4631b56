package api

import (
	"encoding/json"
	"net/http"

	"github.com/tecnitrama/backend/internal/service"
	"github.com/tecnitrama/backend/pkg/models"
)

type ApplicationsHandler struct {
	applications *service.ApplicationService
}

func NewApplicationsHandler(applications *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, err := h.applications.CreateApplication(r.Context(), currentUserID(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, a, http.StatusCreated)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}

	a, err := h.applications.GetApplication(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

func (h *ApplicationsHandler) ListByPostulant(w http.ResponseWriter, r *http.Request) {
	postulantID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid postulant id", http.StatusBadRequest)
		return
	}

	apps, err := h.applications.ListByPostulant(r.Context(), postulantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeApplications(w, apps)
}

func (h *ApplicationsHandler) ListByPostulantAndStatus(w http.ResponseWriter, r *http.Request) {
	postulantID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid postulant id", http.StatusBadRequest)
		return
	}
	statusID, ok := pathID(r, "statusId")
	if !ok {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	apps, err := h.applications.ListByPostulantAndStatus(r.Context(), postulantID, statusID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeApplications(w, apps)
}

func (h *ApplicationsHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	apps, err := h.applications.ListByProject(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeApplications(w, apps)
}

func (h *ApplicationsHandler) ListByProjectAndStatus(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	statusID, ok := pathID(r, "statusId")
	if !ok {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	apps, err := h.applications.ListByProjectAndStatus(r.Context(), projectID, statusID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeApplications(w, apps)
}

func (h *ApplicationsHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	appID, ok := pathID(r, "appId")
	if !ok {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}
	statusID, ok := pathID(r, "statusId")
	if !ok {
		http.Error(w, "invalid status id", http.StatusBadRequest)
		return
	}

	a, err := h.applications.ChangeStatus(r.Context(), appID, statusID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

func writeApplications(w http.ResponseWriter, apps []models.Application) {
	if apps == nil {
		apps = []models.Application{}
	}
	writeJSON(w, apps, http.StatusOK)
}
