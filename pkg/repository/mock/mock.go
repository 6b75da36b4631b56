package mock

import (
	"context"

	"github.com/tecnitrama/backend/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo    *mockUserRepo
	ProfileRepo *mockProfileRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:    &mockUserRepo{},
		ProfileRepo: &mockProfileRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *u
	stored.ID = 1
	m.Stored = &stored
	return 1, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.Stored == nil {
		return nil, nil
	}
	return []models.User{*m.Stored}, nil
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, u *models.User) error {
	m.Stored = u
	return nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored = nil
	}
	return nil
}

type mockProfileRepo struct {
	Stored    *models.Profile
	CreateErr error
}

func (m *mockProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *p
	stored.ID = 1
	m.Stored = &stored
	return 1, nil
}

func (m *mockProfileRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	if m.Stored != nil && m.Stored.UserID == userID {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	m.Stored = p
	return nil
}

func (m *mockProfileRepo) DeleteProfileByUserID(ctx context.Context, userID int64) error {
	if m.Stored != nil && m.Stored.UserID == userID {
		m.Stored = nil
	}
	return nil
}
