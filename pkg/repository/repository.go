package repository

import (
	"context"

	"github.com/tecnitrama/backend/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return nil, nil on miss; the caller decides what absence means.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (int64, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	DeleteProfileByUserID(ctx context.Context, userID int64) error
}

type ProjectRepo interface {
	// CreateProject inserts the project row and its genre/class association
	// rows in one transaction.
	CreateProject(ctx context.Context, p *models.Project, genreIDs, classIDs []int64) (int64, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByCreator(ctx context.Context, creatorID int64) ([]models.Project, error)
	// UpdateProject rewrites the row and, when an id list is non-nil,
	// replaces that association set (delete-then-insert) in the same
	// transaction. A nil list leaves the associations untouched.
	UpdateProject(ctx context.Context, p *models.Project, genreIDs, classIDs *[]int64) error
	DeleteProject(ctx context.Context, id int64) error
	SetProjectActive(ctx context.Context, id int64, active bool) error
	SetProjectPublished(ctx context.Context, id int64, published bool) error
	IsProjectOwner(ctx context.Context, projectID, userID int64) (bool, error)
	ListGenresByProject(ctx context.Context, projectID int64) ([]models.Lookup, error)
	ListClassesByProject(ctx context.Context, projectID int64) ([]models.Lookup, error)
}

type CrewRepo interface {
	ListCrewByProject(ctx context.Context, projectID int64) ([]models.CrewMember, error)
	// DeleteCrewByProject removes the given users from a project's crew and
	// reports how many rows were deleted.
	DeleteCrewByProject(ctx context.Context, projectID int64, userIDs []int64) (int64, error)
}

type VacancyRepo interface {
	CreateVacancy(ctx context.Context, v *models.Vacancy) (int64, error)
	GetVacancyByID(ctx context.Context, id int64) (*models.Vacancy, error)
	ListVacancies(ctx context.Context) ([]models.Vacancy, error)
	ListVacanciesByProject(ctx context.Context, projectID int64) ([]models.Vacancy, error)
	UpdateVacancy(ctx context.Context, v *models.Vacancy) error
	DeleteVacancy(ctx context.Context, id int64) error
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	ListApplicationsByPostulant(ctx context.Context, postulantID int64) ([]models.Application, error)
	ListApplicationsByProject(ctx context.Context, projectID int64) ([]models.Application, error)
	ListApplicationsByPostulantAndStatus(ctx context.Context, postulantID, statusID int64) ([]models.Application, error)
	ListApplicationsByProjectAndStatus(ctx context.Context, projectID, statusID int64) ([]models.Application, error)
	// UpdateApplicationStatus sets the status and reports whether the row
	// existed.
	UpdateApplicationStatus(ctx context.Context, id, statusID int64) (bool, error)
	// AcceptApplication runs the full accept workflow in one transaction:
	// status update, crew row for the vacancy's role, vacancy marked
	// filled, and a notification for the postulant.
	AcceptApplication(ctx context.Context, app *models.Application, vac *models.Vacancy, statusID int64, content string) error
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, userID int64, projectID *int64, content string) (int64, error)
	// CreateNotificationForUsers inserts one notification and fans it out to
	// every user id; duplicate (notification, user) pairs are skipped.
	CreateNotificationForUsers(ctx context.Context, userIDs []int64, projectID *int64, content string) (int64, error)
	ListNotificationsByUser(ctx context.Context, userID int64) ([]models.UserNotification, error)
	// MarkNotificationRead is a one-way mark-read; affecting zero rows is
	// not an error.
	MarkNotificationRead(ctx context.Context, notificationID, userID int64) error
}

type LookupRepo interface {
	ListDepartments(ctx context.Context) ([]models.Lookup, error)
	ListRolesByDepartment(ctx context.Context, departmentID int64) ([]models.Role, error)
	GetDepartmentByRole(ctx context.Context, roleID int64) (*models.Lookup, error)
	GetRoleByID(ctx context.Context, id int64) (*models.Role, error)
	ListGenres(ctx context.Context) ([]models.Lookup, error)
	ListClasses(ctx context.Context) ([]models.Lookup, error)
	ListFormats(ctx context.Context) ([]models.Lookup, error)
	ListUserTypes(ctx context.Context) ([]models.Lookup, error)
	CreateUserType(ctx context.Context, name string) (int64, error)
	ListApplicationStatuses(ctx context.Context) ([]models.Lookup, error)
	GetApplicationStatus(ctx context.Context, id int64) (*models.Lookup, error)
}
