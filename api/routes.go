package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tecnitrama/backend/internal/config"
	"github.com/tecnitrama/backend/internal/repository/sqlite"
	"github.com/tecnitrama/backend/internal/search"
	"github.com/tecnitrama/backend/internal/service"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, repo *sqlite.SQLiteRepo, index *search.Index) http.Handler {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Domain services
	users := service.NewUserService(repo, repo, cfg.EmailDomain, logger)
	projects := service.NewProjectService(repo, repo, index, logger)
	vacancies := service.NewVacancyService(repo, repo, logger)
	applications := service.NewApplicationService(repo, repo, repo, repo, logger)
	notifications := service.NewNotificationService(repo, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(users, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(users)
	projectsHandler := NewProjectsHandler(projects)
	vacanciesHandler := NewVacanciesHandler(vacancies)
	applicationsHandler := NewApplicationsHandler(applications)
	notificationsHandler := NewNotificationsHandler(notifications)
	lookupsHandler := NewLookupsHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/v1/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Users and profiles
	apiV1.HandleFunc("/users", RequireAdmin(usersHandler.List)).Methods("GET")
	apiV1.HandleFunc("/users/{id}", usersHandler.Get).Methods("GET")
	apiV1.HandleFunc("/users/{id}", usersHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/users/{id}", usersHandler.Delete).Methods("DELETE")
	apiV1.HandleFunc("/users/{id}/profile", usersHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/users/{id}/profile", usersHandler.UpdateProfile).Methods("PUT")
	apiV1.HandleFunc("/users/{id}/profile", usersHandler.DeleteProfile).Methods("DELETE")

	// Projects
	apiV1.HandleFunc("/projects", projectsHandler.List).Methods("GET")
	apiV1.HandleFunc("/projects", projectsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/projects/search", projectsHandler.Search).Methods("GET")
	apiV1.HandleFunc("/projects/creator/{userId}", projectsHandler.ListByCreator).Methods("GET")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Get).Methods("GET")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Delete).Methods("DELETE")
	apiV1.HandleFunc("/projects/{id}/status", projectsHandler.ToggleStatus).Methods("PATCH")
	apiV1.HandleFunc("/projects/{id}/publish", projectsHandler.TogglePublish).Methods("PATCH")
	apiV1.HandleFunc("/projects/{id}/genres", projectsHandler.Genres).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/classes", projectsHandler.Classes).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/isOwner", projectsHandler.IsOwner).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/crew", projectsHandler.Crew).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/crew", projectsHandler.RemoveCrew).Methods("DELETE")

	// Vacancies
	apiV1.HandleFunc("/vacancies", vacanciesHandler.List).Methods("GET")
	apiV1.HandleFunc("/vacancies", vacanciesHandler.Create).Methods("POST")
	apiV1.HandleFunc("/vacancies/project/{projectId}", vacanciesHandler.ListByProject).Methods("GET")
	apiV1.HandleFunc("/vacancies/{id}", vacanciesHandler.Get).Methods("GET")
	apiV1.HandleFunc("/vacancies/{id}", vacanciesHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/vacancies/{id}", vacanciesHandler.Delete).Methods("DELETE")

	// Applications
	apiV1.HandleFunc("/applications", applicationsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/applications/postulant/{id}", applicationsHandler.ListByPostulant).Methods("GET")
	apiV1.HandleFunc("/applications/postulant/{id}/status/{statusId}", applicationsHandler.ListByPostulantAndStatus).Methods("GET")
	apiV1.HandleFunc("/applications/project/{id}", applicationsHandler.ListByProject).Methods("GET")
	apiV1.HandleFunc("/applications/project/{id}/status/{statusId}", applicationsHandler.ListByProjectAndStatus).Methods("GET")
	apiV1.HandleFunc("/applications/{appId}/status/{statusId}", applicationsHandler.ChangeStatus).Methods("PATCH")
	apiV1.HandleFunc("/applications/{id}", applicationsHandler.Get).Methods("GET")

	// Notifications
	apiV1.HandleFunc("/notifications", notificationsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/notifications/{userId}", notificationsHandler.ListByUser).Methods("GET")
	apiV1.HandleFunc("/notifications/{notificationId}/{userId}", notificationsHandler.MarkRead).Methods("PATCH")

	// Lookups
	apiV1.HandleFunc("/departments", lookupsHandler.Departments).Methods("GET")
	apiV1.HandleFunc("/departments/{id}/roles", lookupsHandler.RolesByDepartment).Methods("GET")
	apiV1.HandleFunc("/roles/{id}/department", lookupsHandler.DepartmentByRole).Methods("GET")
	apiV1.HandleFunc("/genres", lookupsHandler.Genres).Methods("GET")
	apiV1.HandleFunc("/classes", lookupsHandler.Classes).Methods("GET")
	apiV1.HandleFunc("/formats", lookupsHandler.Formats).Methods("GET")
	apiV1.HandleFunc("/user-types", lookupsHandler.UserTypes).Methods("GET")
	apiV1.HandleFunc("/user-types", RequireAdmin(lookupsHandler.CreateUserType)).Methods("POST")
	apiV1.HandleFunc("/application-statuses", lookupsHandler.ApplicationStatuses).Methods("GET")

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return c.Handler(r)
}
