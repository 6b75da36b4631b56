package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/repository"
)

// acceptedStatusName identifies the status that completes the crew
// assignment workflow; the status set itself lives in the lookup table.
const acceptedStatusName = "accepted"

const rejectedStatusName = "rejected"

// ApplicationService owns the application workflow: create, query and the
// status transition that assigns crew.
type ApplicationService struct {
	applications  repository.ApplicationRepo
	vacancies     repository.VacancyRepo
	lookups       repository.LookupRepo
	notifications repository.NotificationRepo
	logger        *slog.Logger
}

func NewApplicationService(applications repository.ApplicationRepo, vacancies repository.VacancyRepo, lookups repository.LookupRepo, notifications repository.NotificationRepo, logger *slog.Logger) *ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{applications: applications, vacancies: vacancies, lookups: lookups, notifications: notifications, logger: logger}
}

type CreateApplicationInput struct {
	VacancyID  int64   `json:"vacancy_id"`
	StatusID   int64   `json:"status_id"`
	Motivation *string `json:"motivation"`
}

// CreateApplication files an application for the postulant against a
// vacancy. The input parameter is the only data source; status defaults to
// the first lookup status when unset.
func (s *ApplicationService) CreateApplication(ctx context.Context, postulantID int64, in CreateApplicationInput) (*models.Application, error) {
	if in.VacancyID <= 0 {
		return nil, newValidationError("vacancy_id is required")
	}

	vac, err := s.vacancies.GetVacancyByID(ctx, in.VacancyID)
	if err != nil {
		return nil, err
	}
	if vac == nil {
		return nil, fmt.Errorf("vacancy %d: %w", in.VacancyID, ErrNotFound)
	}
	if vac.IsFilled {
		return nil, newValidationError("vacancy is already filled")
	}

	statusID := in.StatusID
	if statusID <= 0 {
		statusID = 1
	}
	if err := s.requireStatus(ctx, statusID); err != nil {
		return nil, err
	}

	a := models.Application{
		PostulantID: postulantID,
		VacancyID:   in.VacancyID,
		StatusID:    statusID,
		Motivation:  in.Motivation,
	}
	id, err := s.applications.CreateApplication(ctx, &a)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	return s.GetApplication(ctx, id)
}

func (s *ApplicationService) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	a, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}

	return a, nil
}

func (s *ApplicationService) ListByPostulant(ctx context.Context, postulantID int64) ([]models.Application, error) {
	return s.applications.ListApplicationsByPostulant(ctx, postulantID)
}

func (s *ApplicationService) ListByProject(ctx context.Context, projectID int64) ([]models.Application, error) {
	return s.applications.ListApplicationsByProject(ctx, projectID)
}

func (s *ApplicationService) ListByPostulantAndStatus(ctx context.Context, postulantID, statusID int64) ([]models.Application, error) {
	return s.applications.ListApplicationsByPostulantAndStatus(ctx, postulantID, statusID)
}

func (s *ApplicationService) ListByProjectAndStatus(ctx context.Context, projectID, statusID int64) ([]models.Application, error) {
	return s.applications.ListApplicationsByProjectAndStatus(ctx, projectID, statusID)
}

// ChangeStatus moves an application to any existing status; there is no
// transition graph. Moving to "accepted" additionally creates the crew row,
// fills the vacancy and notifies the postulant, all in one transaction;
// "rejected" notifies the postulant with the status change.
func (s *ApplicationService) ChangeStatus(ctx context.Context, applicationID, statusID int64) (*models.Application, error) {
	status, err := s.lookups.GetApplicationStatus(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, newValidationError("unknown application status %d", statusID)
	}

	app, err := s.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(status.Name) {
	case acceptedStatusName:
		vac, err := s.vacancies.GetVacancyByID(ctx, app.VacancyID)
		if err != nil {
			return nil, err
		}
		if vac == nil {
			return nil, fmt.Errorf("vacancy %d: %w", app.VacancyID, ErrNotFound)
		}
		content := fmt.Sprintf("Your application for %s on %s was accepted. Welcome to the crew!", vac.Role.Name, vac.ProjectTitle)
		if err := s.applications.AcceptApplication(ctx, app, vac, statusID, content); err != nil {
			return nil, fmt.Errorf("accept application: %w", err)
		}
		s.logger.Info("application accepted",
			slog.Int64("application_id", applicationID),
			slog.Int64("vacancy_id", vac.ID),
			slog.Int64("postulant_id", app.PostulantID))

	case rejectedStatusName:
		found, err := s.applications.UpdateApplicationStatus(ctx, applicationID, statusID)
		if err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
		}
		s.notifyRejection(ctx, app)

	default:
		found, err := s.applications.UpdateApplicationStatus(ctx, applicationID, statusID)
		if err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
		}
	}

	return s.GetApplication(ctx, applicationID)
}

// notifyRejection is best-effort; the status change already committed.
func (s *ApplicationService) notifyRejection(ctx context.Context, app *models.Application) {
	vac, err := s.vacancies.GetVacancyByID(ctx, app.VacancyID)
	if err != nil || vac == nil {
		return
	}
	content := fmt.Sprintf("Your application for %s on %s was not selected.", vac.Role.Name, vac.ProjectTitle)
	if _, err := s.notifications.CreateNotification(ctx, app.PostulantID, &vac.ProjectID, content); err != nil {
		s.logger.Error("notify rejection", slog.Int64("application_id", app.ID), slog.Any("err", err))
	}
}

func (s *ApplicationService) requireStatus(ctx context.Context, statusID int64) error {
	status, err := s.lookups.GetApplicationStatus(ctx, statusID)
	if err != nil {
		return err
	}
	if status == nil {
		return newValidationError("unknown application status %d", statusID)
	}
	return nil
}
