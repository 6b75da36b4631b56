package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnitrama/backend/pkg/models"
)

const vacancyColumns = `v.id, v.project_id, v.role_id, v.description, v.requirements, v.is_filled, v.is_visible, p.title, ro.id, ro.department_id, ro.name`

const vacancyJoins = ` FROM vacancies v JOIN projects p ON p.id = v.project_id JOIN roles ro ON ro.id = v.role_id`

func (r *SQLiteRepo) CreateVacancy(ctx context.Context, v *models.Vacancy) (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("vacancy is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO vacancies (project_id, role_id, description, requirements, is_filled, is_visible) VALUES (?, ?, ?, ?, ?, ?)`,
		v.ProjectID, v.RoleID, v.Description, v.Requirements, v.IsFilled, v.IsVisible)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetVacancyByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+vacancyColumns+vacancyJoins+` WHERE v.id = ?`, id)
	v, err := scanVacancy(row.Scan)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (r *SQLiteRepo) ListVacancies(ctx context.Context) ([]models.Vacancy, error) {
	return r.listVacancies(ctx, `SELECT `+vacancyColumns+vacancyJoins+` ORDER BY v.id`)
}

func (r *SQLiteRepo) ListVacanciesByProject(ctx context.Context, projectID int64) ([]models.Vacancy, error) {
	return r.listVacancies(ctx, `SELECT `+vacancyColumns+vacancyJoins+` WHERE v.project_id = ? ORDER BY v.id`, projectID)
}

func (r *SQLiteRepo) listVacancies(ctx context.Context, query string, args ...any) ([]models.Vacancy, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}

	return out, rows.Err()
}

func scanVacancy(scan func(dest ...any) error) (*models.Vacancy, error) {
	var v models.Vacancy
	var description, requirements sql.NullString
	var ro models.Role
	err := scan(&v.ID, &v.ProjectID, &v.RoleID, &description, &requirements, &v.IsFilled, &v.IsVisible, &v.ProjectTitle, &ro.ID, &ro.DepartmentID, &ro.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	v.Description = description.String
	v.Requirements = requirements.String
	v.Role = &ro

	return &v, nil
}

func (r *SQLiteRepo) UpdateVacancy(ctx context.Context, v *models.Vacancy) error {
	if v == nil {
		return fmt.Errorf("vacancy is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE vacancies SET role_id = ?, description = ?, requirements = ?, is_filled = ?, is_visible = ? WHERE id = ?`,
		v.RoleID, v.Description, v.Requirements, v.IsFilled, v.IsVisible, v.ID)
	return err
}

func (r *SQLiteRepo) DeleteVacancy(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM vacancies WHERE id = ?`, id)
	return err
}
