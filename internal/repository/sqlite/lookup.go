package sqlite

import (
	"context"
	"database/sql"

	"github.com/tecnitrama/backend/pkg/models"
)

func (r *SQLiteRepo) listLookups(ctx context.Context, query string, args ...any) ([]models.Lookup, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lookup
	for rows.Next() {
		var l models.Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListDepartments(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM departments ORDER BY id`)
}

func (r *SQLiteRepo) ListRolesByDepartment(ctx context.Context, departmentID int64) ([]models.Role, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, department_id, name FROM roles WHERE department_id = ? ORDER BY id`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Role
	for rows.Next() {
		var ro models.Role
		if err := rows.Scan(&ro.ID, &ro.DepartmentID, &ro.Name); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetDepartmentByRole(ctx context.Context, roleID int64) (*models.Lookup, error) {
	row := r.conn.QueryRow(ctx, `SELECT d.id, d.name FROM departments d JOIN roles ro ON ro.department_id = d.id WHERE ro.id = ?`, roleID)
	var d models.Lookup
	if err := row.Scan(&d.ID, &d.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &d, nil
}

func (r *SQLiteRepo) GetRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, department_id, name FROM roles WHERE id = ?`, id)
	var ro models.Role
	if err := row.Scan(&ro.ID, &ro.DepartmentID, &ro.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &ro, nil
}

func (r *SQLiteRepo) ListGenres(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM genres ORDER BY id`)
}

func (r *SQLiteRepo) ListClasses(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM classes ORDER BY id`)
}

func (r *SQLiteRepo) ListFormats(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM formats ORDER BY id`)
}

func (r *SQLiteRepo) ListUserTypes(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM user_types ORDER BY id`)
}

func (r *SQLiteRepo) CreateUserType(ctx context.Context, name string) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO user_types (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) ListApplicationStatuses(ctx context.Context) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT id, name FROM application_statuses ORDER BY id`)
}

func (r *SQLiteRepo) GetApplicationStatus(ctx context.Context, id int64) (*models.Lookup, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name FROM application_statuses WHERE id = ?`, id)
	var s models.Lookup
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}
