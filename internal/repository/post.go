package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wayfarer/wayfarer-go/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

const postColumns = `id, title, content, image_url, category, location, author, created_at`

// PostRepository handles blog post persistence for the blog service.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and sets the generated ID on the post struct.
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (title, content, image_url, category, location, author)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.Title, p.Content, p.ImageURL, p.Category, p.Location, p.Author,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// List retrieves all posts, newest first, optionally filtered by category.
// An empty category or "all" means no filter.
func (r *PostRepository) List(ctx context.Context, category string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	args := []any{}
	if category != "" && category != "all" {
		query = `SELECT ` + postColumns + ` FROM posts WHERE category = ? ORDER BY created_at DESC`
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListByAuthor retrieves all posts by a given author, newest first.
func (r *PostRepository) ListByAuthor(ctx context.Context, author int64) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// GetByID retrieves a single post.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`

	p := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.Category, &p.Location,
		&p.Author, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return p, nil
}

// GetOwned retrieves a post scoped to {id, author}. A post that exists but
// belongs to someone else is indistinguishable from one that does not
// exist.
func (r *PostRepository) GetOwned(ctx context.Context, id, author int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ? AND author = ?`

	p := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id, author).Scan(
		&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.Category, &p.Location,
		&p.Author, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return p, nil
}

// Update persists the mutable fields of a post, scoped to {id, author}.
func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `UPDATE posts SET title = ?, content = ?, image_url = ?, category = ?, location = ?
		WHERE id = ? AND author = ?`

	_, err := r.db.ExecContext(ctx, query,
		p.Title, p.Content, p.ImageURL, p.Category, p.Location,
		p.ID, p.Author,
	)
	return err
}

// Delete removes a post scoped to {id, author}.
func (r *PostRepository) Delete(ctx context.Context, id, author int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ? AND author = ?`, id, author)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.Category, &p.Location,
			&p.Author, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
