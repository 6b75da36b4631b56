package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are Unix milliseconds.

type User struct {
	ID           int64  `json:"id" db:"id"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	RegisteredAt int64  `json:"registered_at" db:"registered_at"`
	IsActive     bool   `json:"is_active" db:"is_active"`
	UserTypeID   int64  `json:"user_type_id" db:"user_type_id"`
}

type Profile struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"user_id" db:"user_id"`
	Experience string `json:"experience,omitempty" db:"experience"`
	Career     string `json:"career,omitempty" db:"career"`
	Bio        string `json:"bio,omitempty" db:"bio"`
	AvatarURL  string `json:"avatar_url,omitempty" db:"avatar_url"`
	Updated    int64  `json:"updated" db:"updated"`
}

// UserSummary is the public projection embedded in projects, crew and
// application listings.
type UserSummary struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
}

type Project struct {
	ID            int64    `json:"id" db:"id"`
	CreatorID     int64    `json:"creator_id" db:"creator_id"`
	Title         string   `json:"title" db:"title"`
	Description   string   `json:"description,omitempty" db:"description"`
	BannerURL     string   `json:"banner_url,omitempty" db:"banner_url"`
	AttachmentURL string   `json:"attachment_url,omitempty" db:"attachment_url"`
	Budget        *float64 `json:"budget,omitempty" db:"budget"`
	Sponsors      string   `json:"sponsors,omitempty" db:"sponsors"`
	EstStartAt    *int64   `json:"est_start_at,omitempty" db:"est_start_at"`
	EstEndAt      *int64   `json:"est_end_at,omitempty" db:"est_end_at"`
	IsActive      bool     `json:"is_active" db:"is_active"`
	IsPublished   bool     `json:"is_published" db:"is_published"`
	FormatID      *int64   `json:"format_id,omitempty" db:"format_id"`
	CreatedAt     int64    `json:"created_at" db:"created_at"`

	// Embedded associations, populated by the detail queries only.
	Format  *Lookup      `json:"format,omitempty"`
	Creator *UserSummary `json:"creator,omitempty"`
	Genres  []Lookup     `json:"genres,omitempty"`
	Classes []Lookup     `json:"classes,omitempty"`
	Crew    []CrewMember `json:"crew,omitempty"`
}

type Vacancy struct {
	ID           int64  `json:"id" db:"id"`
	ProjectID    int64  `json:"project_id" db:"project_id"`
	RoleID       int64  `json:"role_id" db:"role_id"`
	Description  string `json:"description,omitempty" db:"description"`
	Requirements string `json:"requirements,omitempty" db:"requirements"`
	IsFilled     bool   `json:"is_filled" db:"is_filled"`
	IsVisible    bool   `json:"is_visible" db:"is_visible"`

	ProjectTitle string `json:"project_title,omitempty"`
	Role         *Role  `json:"role,omitempty"`
}

type Application struct {
	ID          int64   `json:"id" db:"id"`
	PostulantID int64   `json:"postulant_id" db:"postulant_id"`
	VacancyID   int64   `json:"vacancy_id" db:"vacancy_id"`
	StatusID    int64   `json:"status_id" db:"status_id"`
	Motivation  *string `json:"motivation,omitempty" db:"motivation"`
	AppliedAt   int64   `json:"applied_at" db:"applied_at"`

	Status    *Lookup      `json:"status,omitempty"`
	Vacancy   *Vacancy     `json:"vacancy,omitempty"`
	Postulant *UserSummary `json:"postulant,omitempty"`
}

type CrewMember struct {
	ID        int64 `json:"id" db:"id"`
	ProjectID int64 `json:"project_id" db:"project_id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	RoleID    int64 `json:"role_id" db:"role_id"`

	User *UserSummary `json:"user,omitempty"`
	Role *Role        `json:"role,omitempty"`
}

type Notification struct {
	ID        int64  `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	IsRead    bool   `json:"is_read" db:"is_read"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// UserNotification is one fan-out row: a notification delivered to one user
// with its own read flag.
type UserNotification struct {
	ID             int64  `json:"id" db:"id"`
	UserID         int64  `json:"user_id" db:"user_id"`
	ProjectID      *int64 `json:"project_id,omitempty" db:"project_id"`
	NotificationID int64  `json:"notification_id" db:"notification_id"`
	IsRead         bool   `json:"is_read" db:"is_read"`
	Content        string `json:"content,omitempty"`
	CreatedAt      int64  `json:"created_at,omitempty"`
}

// Lookup is a flat id+name reference row (genres, classes, formats,
// user types, application statuses, departments).
type Lookup struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Role struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"department_id" db:"department_id"`
	Name         string `json:"name" db:"name"`
}
