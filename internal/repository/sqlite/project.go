package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnitrama/backend/pkg/models"
)

const projectColumns = `id, creator_id, title, description, banner_url, attachment_url, budget, sponsors, est_start_at, est_end_at, is_active, is_published, format_id, created_at`

// CreateProject inserts the project row and bulk-inserts its genre and class
// associations in one transaction; nothing commits if any insert fails.
func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project, genreIDs, classIDs []int64) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("project is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO projects (creator_id, title, description, banner_url, attachment_url, budget, sponsors, est_start_at, est_end_at, is_active, is_published, format_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.CreatorID, p.Title, p.Description, p.BannerURL, p.AttachmentURL, p.Budget, p.Sponsors, p.EstStartAt, p.EstEndAt, p.IsActive, p.IsPublished, p.FormatID, now())
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		if err := insertAssociations(ctx, tx, `INSERT INTO project_genres (project_id, genre_id) VALUES (?, ?)`, id, genreIDs); err != nil {
			return fmt.Errorf("insert project genres: %w", err)
		}
		if err := insertAssociations(ctx, tx, `INSERT INTO project_classes (project_id, class_id) VALUES (?, ?)`, id, classIDs); err != nil {
			return fmt.Errorf("insert project classes: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func insertAssociations(ctx context.Context, tx *sql.Tx, query string, projectID int64, ids []int64) error {
	for _, assocID := range ids {
		if _, err := tx.ExecContext(ctx, query, projectID, assocID); err != nil {
			return err
		}
	}
	return nil
}

// GetProjectByID returns one project with format, creator, genres, classes
// and crew embedded, or nil when absent.
func (r *SQLiteRepo) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if err != nil || p == nil {
		return p, err
	}

	if err := r.embedProjectRefs(ctx, p); err != nil {
		return nil, err
	}
	if p.Genres, err = r.ListGenresByProject(ctx, id); err != nil {
		return nil, err
	}
	if p.Classes, err = r.ListClassesByProject(ctx, id); err != nil {
		return nil, err
	}
	if p.Crew, err = r.ListCrewByProject(ctx, id); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
}

func (r *SQLiteRepo) ListProjectsByCreator(ctx context.Context, creatorID int64) ([]models.Project, error) {
	return r.listProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE creator_id = ? ORDER BY created_at DESC`, creatorID)
}

func (r *SQLiteRepo) listProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.embedProjectRefs(ctx, &out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	var p models.Project
	var description, banner, attachment, sponsors sql.NullString
	var budget sql.NullFloat64
	var estStart, estEnd, formatID sql.NullInt64
	err := scan(&p.ID, &p.CreatorID, &p.Title, &description, &banner, &attachment, &budget, &sponsors, &estStart, &estEnd, &p.IsActive, &p.IsPublished, &formatID, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	p.Description = description.String
	p.BannerURL = banner.String
	p.AttachmentURL = attachment.String
	p.Sponsors = sponsors.String
	if budget.Valid {
		p.Budget = &budget.Float64
	}
	if estStart.Valid {
		p.EstStartAt = &estStart.Int64
	}
	if estEnd.Valid {
		p.EstEndAt = &estEnd.Int64
	}
	if formatID.Valid {
		p.FormatID = &formatID.Int64
	}

	return &p, nil
}

// embedProjectRefs fills the format and creator summary projections.
func (r *SQLiteRepo) embedProjectRefs(ctx context.Context, p *models.Project) error {
	if p.FormatID != nil {
		row := r.conn.QueryRow(ctx, `SELECT id, name FROM formats WHERE id = ?`, *p.FormatID)
		var f models.Lookup
		if err := row.Scan(&f.ID, &f.Name); err != nil {
			if err != sql.ErrNoRows {
				return err
			}
		} else {
			p.Format = &f
		}
	}

	row := r.conn.QueryRow(ctx, `SELECT id, first_name, last_name, email FROM users WHERE id = ?`, p.CreatorID)
	var u models.UserSummary
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email); err != nil {
		if err != sql.ErrNoRows {
			return err
		}
	} else {
		p.Creator = &u
	}

	return nil
}

// UpdateProject rewrites the project row and replaces the association sets
// whose id list is non-nil (delete-all-then-insert-all), all in one
// transaction.
func (r *SQLiteRepo) UpdateProject(ctx context.Context, p *models.Project, genreIDs, classIDs *[]int64) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE projects SET title = ?, description = ?, banner_url = ?, attachment_url = ?, budget = ?, sponsors = ?, est_start_at = ?, est_end_at = ?, format_id = ? WHERE id = ?`,
			p.Title, p.Description, p.BannerURL, p.AttachmentURL, p.Budget, p.Sponsors, p.EstStartAt, p.EstEndAt, p.FormatID, p.ID)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		if genreIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM project_genres WHERE project_id = ?`, p.ID); err != nil {
				return fmt.Errorf("clear project genres: %w", err)
			}
			if err := insertAssociations(ctx, tx, `INSERT INTO project_genres (project_id, genre_id) VALUES (?, ?)`, p.ID, *genreIDs); err != nil {
				return fmt.Errorf("replace project genres: %w", err)
			}
		}
		if classIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM project_classes WHERE project_id = ?`, p.ID); err != nil {
				return fmt.Errorf("clear project classes: %w", err)
			}
			if err := insertAssociations(ctx, tx, `INSERT INTO project_classes (project_id, class_id) VALUES (?, ?)`, p.ID, *classIDs); err != nil {
				return fmt.Errorf("replace project classes: %w", err)
			}
		}

		return nil
	})
}

func (r *SQLiteRepo) DeleteProject(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) SetProjectActive(ctx context.Context, id int64, active bool) error {
	_, err := r.conn.Exec(ctx, `UPDATE projects SET is_active = ? WHERE id = ?`, active, id)
	return err
}

func (r *SQLiteRepo) SetProjectPublished(ctx context.Context, id int64, published bool) error {
	_, err := r.conn.Exec(ctx, `UPDATE projects SET is_published = ? WHERE id = ?`, published, id)
	return err
}

func (r *SQLiteRepo) IsProjectOwner(ctx context.Context, projectID, userID int64) (bool, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM projects WHERE id = ? AND creator_id = ?`, projectID, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SQLiteRepo) ListGenresByProject(ctx context.Context, projectID int64) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT g.id, g.name FROM genres g JOIN project_genres pg ON pg.genre_id = g.id WHERE pg.project_id = ? ORDER BY g.id`, projectID)
}

func (r *SQLiteRepo) ListClassesByProject(ctx context.Context, projectID int64) ([]models.Lookup, error) {
	return r.listLookups(ctx, `SELECT c.id, c.name FROM classes c JOIN project_classes pc ON pc.class_id = c.id WHERE pc.project_id = ? ORDER BY c.id`, projectID)
}
