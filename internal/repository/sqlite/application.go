package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnitrama/backend/pkg/models"
)

const applicationColumns = `a.id, a.postulant_id, a.vacancy_id, a.status_id, a.motivation, a.applied_at, s.id, s.name, u.id, u.first_name, u.last_name, u.email`

const applicationJoins = ` FROM applications a JOIN application_statuses s ON s.id = a.status_id JOIN users u ON u.id = a.postulant_id`

// CreateApplication inserts the application row inside a transaction so the
// accept workflow can grow around it without changing commit semantics.
func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO applications (postulant_id, vacancy_id, status_id, motivation, applied_at) VALUES (?, ?, ?, ?, ?)`,
			a.PostulantID, a.VacancyID, a.StatusID, a.Motivation, now())
		if err != nil {
			return fmt.Errorf("insert application: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.id = ?`, id)
	a, err := scanApplication(row.Scan)
	if err != nil || a == nil {
		return a, err
	}

	if a.Vacancy, err = r.GetVacancyByID(ctx, a.VacancyID); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListApplicationsByPostulant(ctx context.Context, postulantID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.postulant_id = ? ORDER BY a.applied_at DESC`, postulantID)
}

func (r *SQLiteRepo) ListApplicationsByProject(ctx context.Context, projectID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+applicationJoins+` JOIN vacancies v ON v.id = a.vacancy_id WHERE v.project_id = ? ORDER BY a.applied_at DESC`, projectID)
}

func (r *SQLiteRepo) ListApplicationsByPostulantAndStatus(ctx context.Context, postulantID, statusID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+applicationJoins+` WHERE a.postulant_id = ? AND a.status_id = ? ORDER BY a.applied_at DESC`, postulantID, statusID)
}

func (r *SQLiteRepo) ListApplicationsByProjectAndStatus(ctx context.Context, projectID, statusID int64) ([]models.Application, error) {
	return r.listApplications(ctx, `SELECT `+applicationColumns+applicationJoins+` JOIN vacancies v ON v.id = a.vacancy_id WHERE v.project_id = ? AND a.status_id = ? ORDER BY a.applied_at DESC`, projectID, statusID)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Vacancy, err = r.GetVacancyByID(ctx, out[i].VacancyID); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func scanApplication(scan func(dest ...any) error) (*models.Application, error) {
	var a models.Application
	var motivation sql.NullString
	var status models.Lookup
	var u models.UserSummary
	err := scan(&a.ID, &a.PostulantID, &a.VacancyID, &a.StatusID, &motivation, &a.AppliedAt, &status.ID, &status.Name, &u.ID, &u.FirstName, &u.LastName, &u.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	if motivation.Valid {
		s := motivation.String
		a.Motivation = &s
	}
	a.Status = &status
	a.Postulant = &u

	return &a, nil
}

// UpdateApplicationStatus sets the status of one application and reports
// whether the row existed.
func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id, statusID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `UPDATE applications SET status_id = ? WHERE id = ?`, statusID, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// AcceptApplication commits the whole accept workflow atomically: the status
// change, the crew membership for the vacancy's role, the vacancy fill flag
// and the postulant's notification. Any failure rolls all of it back.
func (r *SQLiteRepo) AcceptApplication(ctx context.Context, app *models.Application, vac *models.Vacancy, statusID int64, content string) error {
	if app == nil || vac == nil {
		return fmt.Errorf("application or vacancy is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE applications SET status_id = ? WHERE id = ?`, statusID, app.ID); err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		if err := insertCrewTx(ctx, tx, vac.ProjectID, app.PostulantID, vac.RoleID); err != nil {
			return fmt.Errorf("insert crew member: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE vacancies SET is_filled = 1 WHERE id = ?`, vac.ID); err != nil {
			return fmt.Errorf("mark vacancy filled: %w", err)
		}
		if _, err := insertNotificationTx(ctx, tx, []int64{app.PostulantID}, &vac.ProjectID, content); err != nil {
			return fmt.Errorf("notify postulant: %w", err)
		}

		return nil
	})
}
