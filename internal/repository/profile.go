package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wayfarer/wayfarer-go/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

const profileColumns = `id, user_id, name, profile_picture, bio, location,
	twitter, instagram, facebook, email_notifications, newsletter,
	created_at, updated_at`

// ProfileRepository handles profile persistence for the user service.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile. The UNIQUE key on user_id enforces at most
// one profile per credential.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles
		(user_id, name, profile_picture, bio, location, twitter, instagram, facebook, email_notifications, newsletter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.ProfilePicture, p.Bio, p.Location,
		p.Twitter, p.Instagram, p.Facebook,
		p.EmailNotifications, p.Newsletter,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrProfileExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// GetByUserID retrieves a profile by the owning user's ID.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ?`

	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.ProfilePicture, &p.Bio, &p.Location,
		&p.Twitter, &p.Instagram, &p.Facebook,
		&p.EmailNotifications, &p.Newsletter,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return p, nil
}

// Update persists the full field set of a profile and refreshes its
// updated_at timestamp.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `UPDATE profiles SET
		name = ?, profile_picture = ?, bio = ?, location = ?,
		twitter = ?, instagram = ?, facebook = ?,
		email_notifications = ?, newsletter = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.ProfilePicture, p.Bio, p.Location,
		p.Twitter, p.Instagram, p.Facebook,
		p.EmailNotifications, p.Newsletter,
		p.UserID,
	)
	if err != nil {
		return err
	}

	// RowsAffected can be 0 for a no-op update of an existing row, so a
	// missing profile is checked by the caller before updating.
	_, err = result.RowsAffected()
	return err
}

// Delete removes a profile by the owning user's ID.
func (r *ProfileRepository) Delete(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
