package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/patch"
	"github.com/tecnitrama/backend/pkg/repository"
)

// VacancyService owns the vacancy lifecycle under a project.
type VacancyService struct {
	vacancies repository.VacancyRepo
	projects  repository.ProjectRepo
	logger    *slog.Logger
}

func NewVacancyService(vacancies repository.VacancyRepo, projects repository.ProjectRepo, logger *slog.Logger) *VacancyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VacancyService{vacancies: vacancies, projects: projects, logger: logger}
}

type CreateVacancyInput struct {
	ProjectID    int64  `json:"project_id"`
	RoleID       int64  `json:"role_id"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	// IsVisible defaults to true only when absent; a supplied false is
	// honored.
	IsVisible patch.Field[bool] `json:"is_visible"`
}

func (s *VacancyService) CreateVacancy(ctx context.Context, in CreateVacancyInput) (*models.Vacancy, error) {
	if in.ProjectID <= 0 || in.RoleID <= 0 {
		return nil, newValidationError("project_id and role_id are required")
	}

	p, err := s.projects.GetProjectByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %d: %w", in.ProjectID, ErrNotFound)
	}

	v := models.Vacancy{
		ProjectID:    in.ProjectID,
		RoleID:       in.RoleID,
		Description:  in.Description,
		Requirements: in.Requirements,
		IsFilled:     false,
		IsVisible:    in.IsVisible.Or(true),
	}
	id, err := s.vacancies.CreateVacancy(ctx, &v)
	if err != nil {
		return nil, fmt.Errorf("create vacancy: %w", err)
	}

	return s.GetVacancy(ctx, id)
}

func (s *VacancyService) GetVacancy(ctx context.Context, id int64) (*models.Vacancy, error) {
	v, err := s.vacancies.GetVacancyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("vacancy %d: %w", id, ErrNotFound)
	}

	return v, nil
}

func (s *VacancyService) ListVacancies(ctx context.Context) ([]models.Vacancy, error) {
	return s.vacancies.ListVacancies(ctx)
}

func (s *VacancyService) ListVacanciesByProject(ctx context.Context, projectID int64) ([]models.Vacancy, error) {
	return s.vacancies.ListVacanciesByProject(ctx, projectID)
}

type VacancyPatch struct {
	RoleID       patch.Field[int64]  `json:"role_id"`
	Description  patch.Field[string] `json:"description"`
	Requirements patch.Field[string] `json:"requirements"`
	IsFilled     patch.Field[bool]   `json:"is_filled"`
	IsVisible    patch.Field[bool]   `json:"is_visible"`
}

// UpdateVacancy merges the patch over the stored row; only supplied fields
// change.
func (s *VacancyService) UpdateVacancy(ctx context.Context, id int64, in VacancyPatch) (*models.Vacancy, error) {
	v, err := s.GetVacancy(ctx, id)
	if err != nil {
		return nil, err
	}

	v.RoleID = in.RoleID.Or(v.RoleID)
	v.Description = in.Description.Or(v.Description)
	v.Requirements = in.Requirements.Or(v.Requirements)
	v.IsFilled = in.IsFilled.Or(v.IsFilled)
	v.IsVisible = in.IsVisible.Or(v.IsVisible)
	if v.RoleID <= 0 {
		return nil, newValidationError("role_id must be positive")
	}

	if err := s.vacancies.UpdateVacancy(ctx, v); err != nil {
		return nil, fmt.Errorf("update vacancy: %w", err)
	}

	return s.GetVacancy(ctx, id)
}

func (s *VacancyService) DeleteVacancy(ctx context.Context, id int64) error {
	if _, err := s.GetVacancy(ctx, id); err != nil {
		return err
	}
	return s.vacancies.DeleteVacancy(ctx, id)
}
