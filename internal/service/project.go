package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tecnitrama/backend/internal/search"
	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/patch"
	"github.com/tecnitrama/backend/pkg/repository"
)

// ProjectService owns the project lifecycle, its genre/class associations
// and the crew roster.
type ProjectService struct {
	projects repository.ProjectRepo
	crew     repository.CrewRepo
	index    *search.Index
	logger   *slog.Logger
}

func NewProjectService(projects repository.ProjectRepo, crew repository.CrewRepo, index *search.Index, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{projects: projects, crew: crew, index: index, logger: logger}
}

type CreateProjectInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	BannerURL     string   `json:"banner_url"`
	AttachmentURL string   `json:"attachment_url"`
	Budget        *float64 `json:"budget"`
	Sponsors      string   `json:"sponsors"`
	EstStartAt    *int64   `json:"est_start_at"`
	EstEndAt      *int64   `json:"est_end_at"`
	FormatID      *int64   `json:"format_id"`
	GenreIDs      []int64  `json:"genre_ids"`
	ClassIDs      []int64  `json:"class_ids"`
}

// CreateProject inserts the project with its genre/class associations in one
// transaction and returns the stored project.
func (s *ProjectService) CreateProject(ctx context.Context, creatorID int64, in CreateProjectInput) (*models.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, newValidationError("title is required")
	}
	if in.Budget != nil && *in.Budget < 0 {
		return nil, newValidationError("budget cannot be negative")
	}
	if in.EstStartAt != nil && in.EstEndAt != nil && *in.EstEndAt < *in.EstStartAt {
		return nil, newValidationError("est_end_at precedes est_start_at")
	}

	p := models.Project{
		CreatorID:     creatorID,
		Title:         in.Title,
		Description:   in.Description,
		BannerURL:     in.BannerURL,
		AttachmentURL: in.AttachmentURL,
		Budget:        in.Budget,
		Sponsors:      in.Sponsors,
		EstStartAt:    in.EstStartAt,
		EstEndAt:      in.EstEndAt,
		IsActive:      true,
		FormatID:      in.FormatID,
	}
	id, err := s.projects.CreateProject(ctx, &p, in.GenreIDs, in.ClassIDs)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	p.ID = id

	s.indexProject(ctx, &p)

	return &p, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	p, err := s.projects.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}

	return p, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.ListProjects(ctx)
}

func (s *ProjectService) ListProjectsByCreator(ctx context.Context, creatorID int64) ([]models.Project, error) {
	return s.projects.ListProjectsByCreator(ctx, creatorID)
}

type ProjectPatch struct {
	Title         patch.Field[string]   `json:"title"`
	Description   patch.Field[string]   `json:"description"`
	BannerURL     patch.Field[string]   `json:"banner_url"`
	AttachmentURL patch.Field[string]   `json:"attachment_url"`
	Budget        patch.Field[*float64] `json:"budget"`
	Sponsors      patch.Field[string]   `json:"sponsors"`
	EstStartAt    patch.Field[*int64]   `json:"est_start_at"`
	EstEndAt      patch.Field[*int64]   `json:"est_end_at"`
	FormatID      patch.Field[*int64]   `json:"format_id"`
	GenreIDs      patch.Field[[]int64]  `json:"genre_ids"`
	ClassIDs      patch.Field[[]int64]  `json:"class_ids"`
}

// UpdateProject merges the patch over the stored row and replaces any
// association set whose id list was supplied. Supplying an empty list
// removes every association of that kind; omitting the key keeps them.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, in ProjectPatch) (*models.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title.Or(p.Title)
	p.Description = in.Description.Or(p.Description)
	p.BannerURL = in.BannerURL.Or(p.BannerURL)
	p.AttachmentURL = in.AttachmentURL.Or(p.AttachmentURL)
	p.Budget = in.Budget.Or(p.Budget)
	p.Sponsors = in.Sponsors.Or(p.Sponsors)
	p.EstStartAt = in.EstStartAt.Or(p.EstStartAt)
	p.EstEndAt = in.EstEndAt.Or(p.EstEndAt)
	p.FormatID = in.FormatID.Or(p.FormatID)

	if strings.TrimSpace(p.Title) == "" {
		return nil, newValidationError("title cannot be empty")
	}
	if p.Budget != nil && *p.Budget < 0 {
		return nil, newValidationError("budget cannot be negative")
	}

	var genreIDs, classIDs *[]int64
	if in.GenreIDs.Set {
		ids := in.GenreIDs.Value
		if ids == nil {
			ids = []int64{}
		}
		genreIDs = &ids
	}
	if in.ClassIDs.Set {
		ids := in.ClassIDs.Value
		if ids == nil {
			ids = []int64{}
		}
		classIDs = &ids
	}

	if err := s.projects.UpdateProject(ctx, p, genreIDs, classIDs); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.indexProject(ctx, p)

	return s.GetProject(ctx, id)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return err
	}

	s.index.Delete(ctx, id)

	return nil
}

func (s *ProjectService) SetProjectActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	return s.projects.SetProjectActive(ctx, id, active)
}

func (s *ProjectService) SetProjectPublished(ctx context.Context, id int64, published bool) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	return s.projects.SetProjectPublished(ctx, id, published)
}

func (s *ProjectService) IsProjectOwner(ctx context.Context, projectID, userID int64) (bool, error) {
	return s.projects.IsProjectOwner(ctx, projectID, userID)
}

func (s *ProjectService) GetCrewByProject(ctx context.Context, projectID int64) ([]models.CrewMember, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.crew.ListCrewByProject(ctx, projectID)
}

// RemoveCrew bulk-removes users from a project's crew. An empty id list is a
// validation error, never a no-op delete.
func (s *ProjectService) RemoveCrew(ctx context.Context, projectID int64, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, newValidationError("user_ids must be a non-empty array")
	}
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return 0, err
	}

	return s.crew.DeleteCrewByProject(ctx, projectID, userIDs)
}

func (s *ProjectService) ListGenresByProject(ctx context.Context, projectID int64) ([]models.Lookup, error) {
	return s.projects.ListGenresByProject(ctx, projectID)
}

func (s *ProjectService) ListClassesByProject(ctx context.Context, projectID int64) ([]models.Lookup, error) {
	return s.projects.ListClassesByProject(ctx, projectID)
}

// SearchProjects queries the optional search index; search.ErrDisabled is
// returned when no index is configured.
func (s *ProjectService) SearchProjects(ctx context.Context, query string) ([]search.ProjectDoc, error) {
	return s.index.Search(ctx, query)
}

// indexProject is best-effort: a search outage never fails the write.
func (s *ProjectService) indexProject(ctx context.Context, p *models.Project) {
	if err := s.index.IndexProject(ctx, p); err != nil {
		s.logger.Error("index project", slog.Int64("project_id", p.ID), slog.Any("err", err))
	}
}
