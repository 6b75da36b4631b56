package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	embedded "github.com/tecnitrama/backend/db"
	dbpkg "github.com/tecnitrama/backend/internal/db"
	sqlite "github.com/tecnitrama/backend/internal/repository/sqlite"
	"github.com/tecnitrama/backend/pkg/models"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()

	// one named in-memory database per test so state never leaks between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, embedded.Migrations, embedded.SeedFiles); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func mustCreateUser(t *testing.T, repo *sqlite.SQLiteRepo, email string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
		UserTypeID:   1,
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	return id
}

func mustCreateProject(t *testing.T, repo *sqlite.SQLiteRepo, creatorID int64, title string, genreIDs, classIDs []int64) int64 {
	t.Helper()
	id, err := repo.CreateProject(context.Background(), &models.Project{
		CreatorID: creatorID,
		Title:     title,
		IsActive:  true,
	}, genreIDs, classIDs)
	if err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	// nil user should error
	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	// Non-existing ID should return nil, nil
	got, err := repo.GetUserByID(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error when getting non-existing ID")
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing ID got: %#v", got)
	}

	got, err = repo.GetUserByEmail(ctx, "a@a.com")
	if err != nil {
		t.Fatalf("expected no error when getting non-existing email")
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing email got: %#v", got)
	}

	id := mustCreateUser(t, repo, "alice@uninorte.edu.co")
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if got == nil || got.Email != "alice@uninorte.edu.co" {
		t.Fatalf("GetUserByID wrong result: %#v", got)
	}

	byEmail, err := repo.GetUserByEmail(ctx, "alice@uninorte.edu.co")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("GetUserByEmail wrong result: %#v", byEmail)
	}

	// duplicate email must hit the unique constraint
	if _, err := repo.CreateUser(ctx, &models.User{FirstName: "A", LastName: "B", Email: "alice@uninorte.edu.co", PasswordHash: "h", UserTypeID: 1}); err == nil {
		t.Fatalf("expected unique constraint error on duplicate email")
	}

	got.FirstName = "Alicia"
	if err := repo.UpdateUser(ctx, got); err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if err := repo.UpdateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when updating nil user")
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
	after, err := repo.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID after delete error: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil after delete got: %#v", after)
	}
}

func TestProfileCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	uid := mustCreateUser(t, repo, "bob@uninorte.edu.co")

	if _, err := repo.CreateProfile(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil profile")
	}

	pid, err := repo.CreateProfile(ctx, &models.Profile{UserID: uid, Bio: "hello"})
	if err != nil {
		t.Fatalf("CreateProfile error: %v", err)
	}
	if pid == 0 {
		t.Fatalf("expected profile id > 0")
	}

	got, err := repo.GetProfileByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("GetProfileByUserID error: %v", err)
	}
	if got == nil || got.Bio != "hello" {
		t.Fatalf("GetProfileByUserID wrong: %#v", got)
	}

	got.Bio = "updated"
	got.Career = "Film"
	if err := repo.UpdateProfile(ctx, got); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if err := repo.UpdateProfile(ctx, nil); err == nil {
		t.Fatalf("expected error when updating nil profile")
	}

	if err := repo.DeleteProfileByUserID(ctx, uid); err != nil {
		t.Fatalf("DeleteProfileByUserID error: %v", err)
	}
	after, err := repo.GetProfileByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("GetProfileByUserID after delete error: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil profile after delete got: %#v", after)
	}
}

func TestProjectAssociations(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	uid := mustCreateUser(t, repo, "carol@uninorte.edu.co")
	pid := mustCreateProject(t, repo, uid, "Short Film", []int64{1, 2}, []int64{1})

	p, err := repo.GetProjectByID(ctx, pid)
	if err != nil {
		t.Fatalf("GetProjectByID error: %v", err)
	}
	if p == nil || p.Title != "Short Film" {
		t.Fatalf("GetProjectByID wrong: %#v", p)
	}
	if len(p.Genres) != 2 || len(p.Classes) != 1 {
		t.Fatalf("expected 2 genres and 1 class got %d/%d", len(p.Genres), len(p.Classes))
	}
	if p.Creator == nil || p.Creator.ID != uid {
		t.Fatalf("expected creator summary embedded, got %#v", p.Creator)
	}

	// replacing the genre set deletes the old rows and inserts the new ones
	genres := []int64{3}
	if err := repo.UpdateProject(ctx, p, &genres, nil); err != nil {
		t.Fatalf("UpdateProject error: %v", err)
	}
	gs, err := repo.ListGenresByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListGenresByProject error: %v", err)
	}
	if len(gs) != 1 || gs[0].ID != 3 {
		t.Fatalf("expected exactly genre 3 got %#v", gs)
	}
	// nil class list must leave the classes untouched
	cs, err := repo.ListClassesByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListClassesByProject error: %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("expected classes untouched got %#v", cs)
	}

	// an empty list removes every association of that kind
	empty := []int64{}
	if err := repo.UpdateProject(ctx, p, nil, &empty); err != nil {
		t.Fatalf("UpdateProject clear classes error: %v", err)
	}
	cs, err = repo.ListClassesByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListClassesByProject error: %v", err)
	}
	if len(cs) != 0 {
		t.Fatalf("expected 0 classes got %#v", cs)
	}

	owner, err := repo.IsProjectOwner(ctx, pid, uid)
	if err != nil {
		t.Fatalf("IsProjectOwner error: %v", err)
	}
	if !owner {
		t.Fatalf("expected creator to be owner")
	}
	other, err := repo.IsProjectOwner(ctx, pid, uid+100)
	if err != nil {
		t.Fatalf("IsProjectOwner error: %v", err)
	}
	if other {
		t.Fatalf("expected non-creator not to be owner")
	}

	if err := repo.SetProjectPublished(ctx, pid, true); err != nil {
		t.Fatalf("SetProjectPublished error: %v", err)
	}
	if err := repo.SetProjectActive(ctx, pid, false); err != nil {
		t.Fatalf("SetProjectActive error: %v", err)
	}
	p, err = repo.GetProjectByID(ctx, pid)
	if err != nil {
		t.Fatalf("GetProjectByID error: %v", err)
	}
	if !p.IsPublished || p.IsActive {
		t.Fatalf("expected published and inactive got %#v", p)
	}

	byCreator, err := repo.ListProjectsByCreator(ctx, uid)
	if err != nil {
		t.Fatalf("ListProjectsByCreator error: %v", err)
	}
	if len(byCreator) != 1 {
		t.Fatalf("expected 1 project for creator got %d", len(byCreator))
	}

	if err := repo.DeleteProject(ctx, pid); err != nil {
		t.Fatalf("DeleteProject error: %v", err)
	}
	after, err := repo.GetProjectByID(ctx, pid)
	if err != nil {
		t.Fatalf("GetProjectByID after delete error: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil after delete got: %#v", after)
	}
}

func TestVacancyCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	uid := mustCreateUser(t, repo, "dan@uninorte.edu.co")
	pid := mustCreateProject(t, repo, uid, "Documentary", nil, nil)

	if _, err := repo.CreateVacancy(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil vacancy")
	}

	vid, err := repo.CreateVacancy(ctx, &models.Vacancy{ProjectID: pid, RoleID: 6, Description: "camera work", IsVisible: false})
	if err != nil {
		t.Fatalf("CreateVacancy error: %v", err)
	}

	v, err := repo.GetVacancyByID(ctx, vid)
	if err != nil {
		t.Fatalf("GetVacancyByID error: %v", err)
	}
	if v == nil || v.ProjectTitle != "Documentary" {
		t.Fatalf("expected project title embedded got %#v", v)
	}
	if v.Role == nil || v.Role.Name != "Director of Photography" {
		t.Fatalf("expected role embedded got %#v", v.Role)
	}
	// a stored false stays false
	if v.IsVisible {
		t.Fatalf("expected is_visible false")
	}

	v.IsVisible = true
	v.Requirements = "own camera"
	if err := repo.UpdateVacancy(ctx, v); err != nil {
		t.Fatalf("UpdateVacancy error: %v", err)
	}
	v, err = repo.GetVacancyByID(ctx, vid)
	if err != nil {
		t.Fatalf("GetVacancyByID error: %v", err)
	}
	if !v.IsVisible || v.Requirements != "own camera" {
		t.Fatalf("UpdateVacancy not applied: %#v", v)
	}

	list, err := repo.ListVacanciesByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListVacanciesByProject error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 vacancy got %d", len(list))
	}

	if err := repo.DeleteVacancy(ctx, vid); err != nil {
		t.Fatalf("DeleteVacancy error: %v", err)
	}
	after, err := repo.GetVacancyByID(ctx, vid)
	if err != nil {
		t.Fatalf("GetVacancyByID after delete error: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil after delete got: %#v", after)
	}
}

func TestApplicationStatusAndAccept(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	creator := mustCreateUser(t, repo, "eva@uninorte.edu.co")
	postulant := mustCreateUser(t, repo, "fred@uninorte.edu.co")
	pid := mustCreateProject(t, repo, creator, "Thriller", nil, nil)
	vid, err := repo.CreateVacancy(ctx, &models.Vacancy{ProjectID: pid, RoleID: 13, IsVisible: true})
	if err != nil {
		t.Fatalf("CreateVacancy error: %v", err)
	}

	motivation := "I cut fast"
	aid, err := repo.CreateApplication(ctx, &models.Application{PostulantID: postulant, VacancyID: vid, StatusID: 1, Motivation: &motivation})
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	app, err := repo.GetApplicationByID(ctx, aid)
	if err != nil {
		t.Fatalf("GetApplicationByID error: %v", err)
	}
	if app == nil || app.Status == nil || app.Status.Name != "pending" {
		t.Fatalf("expected pending status embedded got %#v", app)
	}
	if app.Postulant == nil || app.Postulant.ID != postulant {
		t.Fatalf("expected postulant summary got %#v", app.Postulant)
	}
	if app.Vacancy == nil || app.Vacancy.ID != vid {
		t.Fatalf("expected vacancy embedded got %#v", app.Vacancy)
	}
	if app.Motivation == nil || *app.Motivation != motivation {
		t.Fatalf("expected motivation stored got %#v", app.Motivation)
	}

	// status update on an existing row reports found
	found, err := repo.UpdateApplicationStatus(ctx, aid, 2)
	if err != nil {
		t.Fatalf("UpdateApplicationStatus error: %v", err)
	}
	if !found {
		t.Fatalf("expected update to find the row")
	}

	// a missing row reports not found instead of erroring
	found, err = repo.UpdateApplicationStatus(ctx, 9999, 2)
	if err != nil {
		t.Fatalf("UpdateApplicationStatus missing row error: %v", err)
	}
	if found {
		t.Fatalf("expected no row affected for missing id")
	}

	byStatus, err := repo.ListApplicationsByProjectAndStatus(ctx, pid, 2)
	if err != nil {
		t.Fatalf("ListApplicationsByProjectAndStatus error: %v", err)
	}
	if len(byStatus) != 1 {
		t.Fatalf("expected 1 in-review application got %d", len(byStatus))
	}

	// accept wires the crew row, fills the vacancy and notifies the postulant
	vac, err := repo.GetVacancyByID(ctx, vid)
	if err != nil {
		t.Fatalf("GetVacancyByID error: %v", err)
	}
	if err := repo.AcceptApplication(ctx, app, vac, 3, "welcome aboard"); err != nil {
		t.Fatalf("AcceptApplication error: %v", err)
	}

	app, err = repo.GetApplicationByID(ctx, aid)
	if err != nil {
		t.Fatalf("GetApplicationByID error: %v", err)
	}
	if app.StatusID != 3 {
		t.Fatalf("expected status 3 got %d", app.StatusID)
	}

	crew, err := repo.ListCrewByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListCrewByProject error: %v", err)
	}
	if len(crew) != 1 || crew[0].UserID != postulant || crew[0].RoleID != 13 {
		t.Fatalf("expected postulant on crew with the vacancy role got %#v", crew)
	}

	vac, err = repo.GetVacancyByID(ctx, vid)
	if err != nil {
		t.Fatalf("GetVacancyByID error: %v", err)
	}
	if !vac.IsFilled {
		t.Fatalf("expected vacancy filled after accept")
	}

	notes, err := repo.ListNotificationsByUser(ctx, postulant)
	if err != nil {
		t.Fatalf("ListNotificationsByUser error: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "welcome aboard" {
		t.Fatalf("expected one accept notification got %#v", notes)
	}

	// accepting again keeps a single crew row
	if err := repo.AcceptApplication(ctx, app, vac, 3, "welcome again"); err != nil {
		t.Fatalf("AcceptApplication repeat error: %v", err)
	}
	crew, err = repo.ListCrewByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListCrewByProject error: %v", err)
	}
	if len(crew) != 1 {
		t.Fatalf("expected crew row to stay unique got %d", len(crew))
	}
}

func TestCrewBulkDelete(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	creator := mustCreateUser(t, repo, "gina@uninorte.edu.co")
	m1 := mustCreateUser(t, repo, "hugo@uninorte.edu.co")
	m2 := mustCreateUser(t, repo, "iris@uninorte.edu.co")
	pid := mustCreateProject(t, repo, creator, "Web Series", nil, nil)

	for i, uid := range []int64{m1, m2} {
		vid, err := repo.CreateVacancy(ctx, &models.Vacancy{ProjectID: pid, RoleID: int64(i + 1), IsVisible: true})
		if err != nil {
			t.Fatalf("CreateVacancy error: %v", err)
		}
		aid, err := repo.CreateApplication(ctx, &models.Application{PostulantID: uid, VacancyID: vid, StatusID: 1})
		if err != nil {
			t.Fatalf("CreateApplication error: %v", err)
		}
		app, err := repo.GetApplicationByID(ctx, aid)
		if err != nil {
			t.Fatalf("GetApplicationByID error: %v", err)
		}
		vac, err := repo.GetVacancyByID(ctx, vid)
		if err != nil {
			t.Fatalf("GetVacancyByID error: %v", err)
		}
		if err := repo.AcceptApplication(ctx, app, vac, 3, "welcome"); err != nil {
			t.Fatalf("AcceptApplication error: %v", err)
		}
	}

	crew, err := repo.ListCrewByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListCrewByProject error: %v", err)
	}
	if len(crew) != 2 {
		t.Fatalf("expected 2 crew members got %d", len(crew))
	}

	n, err := repo.DeleteCrewByProject(ctx, pid, []int64{m1, 9999})
	if err != nil {
		t.Fatalf("DeleteCrewByProject error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row deleted got %d", n)
	}

	crew, err = repo.ListCrewByProject(ctx, pid)
	if err != nil {
		t.Fatalf("ListCrewByProject error: %v", err)
	}
	if len(crew) != 1 || crew[0].UserID != m2 {
		t.Fatalf("expected only second member left got %#v", crew)
	}
}

func TestNotificationFanout(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	u1 := mustCreateUser(t, repo, "jon@uninorte.edu.co")
	u2 := mustCreateUser(t, repo, "kim@uninorte.edu.co")
	pid := mustCreateProject(t, repo, u1, "Casting Call", nil, nil)

	if _, err := repo.CreateNotificationForUsers(ctx, nil, nil, "x"); err == nil {
		t.Fatalf("expected error for empty recipient list")
	}

	// duplicate ids in one fan-out collapse to a single junction row
	nid, err := repo.CreateNotificationForUsers(ctx, []int64{u1, u1, u2}, &pid, "auditions open")
	if err != nil {
		t.Fatalf("CreateNotificationForUsers error: %v", err)
	}
	if nid == 0 {
		t.Fatalf("expected notification id > 0")
	}

	for _, uid := range []int64{u1, u2} {
		notes, err := repo.ListNotificationsByUser(ctx, uid)
		if err != nil {
			t.Fatalf("ListNotificationsByUser error: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("expected exactly 1 notification for user %d got %d", uid, len(notes))
		}
		if notes[0].Content != "auditions open" || notes[0].IsRead {
			t.Fatalf("unexpected notification: %#v", notes[0])
		}
		if notes[0].ProjectID == nil || *notes[0].ProjectID != pid {
			t.Fatalf("expected project id on fan-out row got %#v", notes[0].ProjectID)
		}
	}

	if err := repo.MarkNotificationRead(ctx, nid, u1); err != nil {
		t.Fatalf("MarkNotificationRead error: %v", err)
	}
	notes, err := repo.ListNotificationsByUser(ctx, u1)
	if err != nil {
		t.Fatalf("ListNotificationsByUser error: %v", err)
	}
	if !notes[0].IsRead {
		t.Fatalf("expected notification marked read")
	}

	// marking an unknown pair affects nothing and is not an error
	if err := repo.MarkNotificationRead(ctx, 9999, u1); err != nil {
		t.Fatalf("MarkNotificationRead unknown pair error: %v", err)
	}
}

func TestLookups(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	deps, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("ListDepartments error: %v", err)
	}
	if len(deps) != 6 {
		t.Fatalf("expected 6 seeded departments got %d", len(deps))
	}

	roles, err := repo.ListRolesByDepartment(ctx, 1)
	if err != nil {
		t.Fatalf("ListRolesByDepartment error: %v", err)
	}
	if len(roles) != 3 {
		t.Fatalf("expected 3 direction roles got %d", len(roles))
	}

	dep, err := repo.GetDepartmentByRole(ctx, 6)
	if err != nil {
		t.Fatalf("GetDepartmentByRole error: %v", err)
	}
	if dep == nil || dep.Name != "Photography" {
		t.Fatalf("expected Photography department got %#v", dep)
	}
	dep, err = repo.GetDepartmentByRole(ctx, 9999)
	if err != nil {
		t.Fatalf("GetDepartmentByRole missing role error: %v", err)
	}
	if dep != nil {
		t.Fatalf("expected nil for unknown role got %#v", dep)
	}

	role, err := repo.GetRoleByID(ctx, 13)
	if err != nil {
		t.Fatalf("GetRoleByID error: %v", err)
	}
	if role == nil || role.Name != "Editor" || role.DepartmentID != 6 {
		t.Fatalf("unexpected role: %#v", role)
	}

	statuses, err := repo.ListApplicationStatuses(ctx)
	if err != nil {
		t.Fatalf("ListApplicationStatuses error: %v", err)
	}
	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses got %d", len(statuses))
	}
	st, err := repo.GetApplicationStatus(ctx, 3)
	if err != nil {
		t.Fatalf("GetApplicationStatus error: %v", err)
	}
	if st == nil || st.Name != "accepted" {
		t.Fatalf("unexpected status: %#v", st)
	}
	st, err = repo.GetApplicationStatus(ctx, 9999)
	if err != nil {
		t.Fatalf("GetApplicationStatus missing error: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil for unknown status got %#v", st)
	}

	id, err := repo.CreateUserType(ctx, "alumni")
	if err != nil {
		t.Fatalf("CreateUserType error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected user type id > 0")
	}
	types, err := repo.ListUserTypes(ctx)
	if err != nil {
		t.Fatalf("ListUserTypes error: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("expected 3 user types got %d", len(types))
	}
}
