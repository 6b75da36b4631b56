package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnitrama/backend/pkg/models"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("profile is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO profiles (user_id, experience, career, bio, avatar_url, updated) VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Experience, p.Career, p.Bio, p.AvatarURL, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, experience, career, bio, avatar_url, updated FROM profiles WHERE user_id = ?`, userID)
	var p models.Profile
	var experience, career, bio, avatar sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &experience, &career, &bio, &avatar, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	p.Experience = experience.String
	p.Career = career.String
	p.Bio = bio.String
	p.AvatarURL = avatar.String

	return &p, nil
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE profiles SET experience = ?, career = ?, bio = ?, avatar_url = ?, updated = ? WHERE user_id = ?`,
		p.Experience, p.Career, p.Bio, p.AvatarURL, now(), p.UserID)
	return err
}

func (r *SQLiteRepo) DeleteProfileByUserID(ctx context.Context, userID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	return err
}
