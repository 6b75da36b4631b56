package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tecnitrama/backend/pkg/models"
)

func (r *SQLiteRepo) ListCrewByProject(ctx context.Context, projectID int64) ([]models.CrewMember, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT c.id, c.project_id, c.user_id, c.role_id, u.id, u.first_name, u.last_name, u.email, ro.id, ro.department_id, ro.name
		 FROM crew c
		 JOIN users u ON u.id = c.user_id
		 JOIN roles ro ON ro.id = c.role_id
		 WHERE c.project_id = ? ORDER BY c.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CrewMember
	for rows.Next() {
		var m models.CrewMember
		var u models.UserSummary
		var ro models.Role
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.RoleID, &u.ID, &u.FirstName, &u.LastName, &u.Email, &ro.ID, &ro.DepartmentID, &ro.Name); err != nil {
			return nil, err
		}
		m.User = &u
		m.Role = &ro
		out = append(out, m)
	}

	return out, rows.Err()
}

// DeleteCrewByProject bulk-deletes the given users from one project's crew.
func (r *SQLiteRepo) DeleteCrewByProject(ctx context.Context, projectID int64, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ")
	args := make([]any, 0, len(userIDs)+1)
	args = append(args, projectID)
	for _, id := range userIDs {
		args = append(args, id)
	}

	res, err := r.conn.Exec(ctx, `DELETE FROM crew WHERE project_id = ? AND user_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func insertCrewTx(ctx context.Context, tx *sql.Tx, projectID, userID, roleID int64) error {
	_, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO crew (project_id, user_id, role_id) VALUES (?, ?, ?)`, projectID, userID, roleID)
	return err
}
