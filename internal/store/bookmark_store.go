package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Rating      int       `db:"rating"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewBookmark holds the validated fields of a bookmark about to be inserted.
type NewBookmark struct {
	Title       string
	URL         string
	Rating      int
	Description string
}

// BookmarkPatch is a partial update. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Rating      *int
	Description *string
}

// Empty reports whether the patch would change nothing.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Rating == nil && p.Description == nil
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// List returns every bookmark in insertion order.
func (s *BookmarkStore) List(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `
		SELECT id, title, url, rating, description, created_at, updated_at
		FROM bookmarks ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`
		SELECT id, title, url, rating, description, created_at, updated_at
		FROM bookmarks WHERE id = ?
	`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new bookmark under a fresh UUID and returns the stored row.
func (s *BookmarkStore) Create(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO bookmarks (id, title, url, rating, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, nb.Title, nb.URL, nb.Rating, nb.Description, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Update applies the non-nil fields of p to the bookmark and returns the number
// of rows changed. An empty patch touches nothing and returns 0.
func (s *BookmarkStore) Update(ctx context.Context, id string, p BookmarkPatch) (int64, error) {
	if p.Empty() {
		return 0, nil
	}

	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *p.URL)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE bookmarks SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a bookmark by ID. Returns ErrNotFound if no row matched.
func (s *BookmarkStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored bookmarks.
func (s *BookmarkStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		return 0, err
	}
	return n, nil
}
