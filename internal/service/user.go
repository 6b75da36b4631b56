package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tecnitrama/backend/pkg/models"
	"github.com/tecnitrama/backend/pkg/patch"
	"github.com/tecnitrama/backend/pkg/repository"
)

// ErrInvalidCredentials is returned by Authenticate for a wrong email or
// password; the API layer maps it to 401 without leaking which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultUserTypeID is the user type assigned at registration.
const DefaultUserTypeID int64 = 1

// AdminUserTypeID marks the admin user type from the lookup fixtures.
const AdminUserTypeID int64 = 2

// UserService owns account registration, authentication and the user and
// profile lifecycles.
type UserService struct {
	users       repository.UserRepo
	profiles    repository.ProfileRepo
	emailDomain string
	logger      *slog.Logger
}

func NewUserService(users repository.UserRepo, profiles repository.ProfileRepo, emailDomain string, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: users, profiles: profiles, emailDomain: emailDomain, logger: logger}
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// Register validates the institutional email, checks uniqueness, hashes the
// password and creates the user with an empty profile.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, newValidationError("first_name, last_name, email and password are required")
	}
	if !strings.HasSuffix(in.Email, s.emailDomain) {
		return nil, newValidationError("email must end with %s", s.emailDomain)
	}

	existing, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newValidationError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		IsActive:     true,
		UserTypeID:   DefaultUserTypeID,
	}
	id, err := s.users.CreateUser(ctx, &u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = id

	if _, err := s.profiles.CreateProfile(ctx, &models.Profile{UserID: id}); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", id))

	return &u, nil
}

// Authenticate verifies the email/password pair and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

type UserPatch struct {
	FirstName patch.Field[string] `json:"first_name"`
	LastName  patch.Field[string] `json:"last_name"`
	Phone     patch.Field[string] `json:"phone"`
	IsActive  patch.Field[bool]   `json:"is_active"`
}

// UpdateUser merges the patch over the stored row; only supplied fields
// change.
func (s *UserService) UpdateUser(ctx context.Context, id int64, p UserPatch) (*models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	u.FirstName = p.FirstName.Or(u.FirstName)
	u.LastName = p.LastName.Or(u.LastName)
	u.Phone = p.Phone.Or(u.Phone)
	u.IsActive = p.IsActive.Or(u.IsActive)
	if u.FirstName == "" || u.LastName == "" {
		return nil, newValidationError("first_name and last_name cannot be empty")
	}

	if err := s.users.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, id)
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	p, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
	}

	return p, nil
}

type ProfilePatch struct {
	Experience patch.Field[string] `json:"experience"`
	Career     patch.Field[string] `json:"career"`
	Bio        patch.Field[string] `json:"bio"`
	AvatarURL  patch.Field[string] `json:"avatar_url"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfilePatch) (*models.Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Experience = in.Experience.Or(p.Experience)
	p.Career = in.Career.Or(p.Career)
	p.Bio = in.Bio.Or(p.Bio)
	p.AvatarURL = in.AvatarURL.Or(p.AvatarURL)

	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return p, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, userID int64) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}
	return s.profiles.DeleteProfileByUserID(ctx, userID)
}
