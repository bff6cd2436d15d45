package api

import (
	"github.com/halemd30/Bookmarks-server/internal/sanitize"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

// CreateBookmarkRequest documents the body of POST /api/bookmarks. Handlers
// decode into a generic map so presence and type can be reported per field.
type CreateBookmarkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// UpdateBookmarkRequest documents the body of PATCH /api/bookmarks/{id}.
// Any non-empty subset of the fields may be sent.
type UpdateBookmarkRequest struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Description *string `json:"description,omitempty"`
}

// BookmarkResponse is the JSON representation of a single bookmark.
type BookmarkResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// toBookmarkResponse serializes a stored bookmark. Free text is sanitized here,
// on the way out, so rows are kept exactly as submitted.
func toBookmarkResponse(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.Text(b.Title),
		URL:         b.URL,
		Rating:      b.Rating,
		Description: sanitize.Text(b.Description),
	}
}
