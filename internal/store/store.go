package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist.
var ErrNotFound = errors.New("not found")

// BookmarkStoreIface exposes all bookmark data operations.
// No handler may query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	List(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id string) (*Bookmark, error)
	Create(ctx context.Context, nb NewBookmark) (*Bookmark, error)
	Update(ctx context.Context, id string, p BookmarkPatch) (int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
