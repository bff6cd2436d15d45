package store

import (
	"encoding/json"
	"errors"
	"testing"
)

func validPayload() map[string]any {
	return map[string]any{
		"title":       "Go blog",
		"url":         "https://go.dev/blog",
		"rating":      json.Number("4"),
		"description": "Official Go blog",
	}
}

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p map[string]any)
		wantErr   error
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(p map[string]any) {}},
		{name: "rating zero", mutate: func(p map[string]any) { p["rating"] = json.Number("0") }},
		{name: "rating five", mutate: func(p map[string]any) { p["rating"] = json.Number("5") }},
		{name: "rating numeric string", mutate: func(p map[string]any) { p["rating"] = "3" }},
		{name: "rating integral float", mutate: func(p map[string]any) { p["rating"] = json.Number("2.0") }},

		// Presence
		{
			name:    "missing title",
			mutate:  func(p map[string]any) { delete(p, "title") },
			wantErr: ErrMissingField, wantField: "title",
			wantMsg: "missing 'title' in request body",
		},
		{
			name:    "missing url",
			mutate:  func(p map[string]any) { delete(p, "url") },
			wantErr: ErrMissingField, wantField: "url",
			wantMsg: "missing 'url' in request body",
		},
		{
			name:    "missing rating",
			mutate:  func(p map[string]any) { delete(p, "rating") },
			wantErr: ErrMissingField, wantField: "rating",
			wantMsg: "missing 'rating' in request body",
		},
		{
			name:    "missing description",
			mutate:  func(p map[string]any) { delete(p, "description") },
			wantErr: ErrMissingField, wantField: "description",
			wantMsg: "missing 'description' in request body",
		},
		{
			name:    "null title",
			mutate:  func(p map[string]any) { p["title"] = nil },
			wantErr: ErrMissingField, wantField: "title",
		},
		{
			name:    "blank description",
			mutate:  func(p map[string]any) { p["description"] = "   " },
			wantErr: ErrMissingField, wantField: "description",
		},
		{
			name:    "empty rating string",
			mutate:  func(p map[string]any) { p["rating"] = "" },
			wantErr: ErrMissingField, wantField: "rating",
		},

		// Ordering: presence beats format, title reported before description.
		{
			name: "missing description and bad rating",
			mutate: func(p map[string]any) {
				delete(p, "description")
				p["rating"] = json.Number("9")
			},
			wantErr: ErrMissingField, wantField: "description",
		},
		{
			name: "missing title and description",
			mutate: func(p map[string]any) {
				delete(p, "title")
				delete(p, "description")
			},
			wantErr: ErrMissingField, wantField: "title",
		},
		{
			name: "bad rating and bad url",
			mutate: func(p map[string]any) {
				p["rating"] = json.Number("6")
				p["url"] = "not a url"
			},
			wantErr: ErrInvalidRating, wantField: "rating",
		},

		// Rating
		{
			name:    "rating above range",
			mutate:  func(p map[string]any) { p["rating"] = json.Number("6") },
			wantErr: ErrInvalidRating, wantField: "rating",
			wantMsg: "'rating' must be a number between 0 and 5",
		},
		{
			name:    "rating below range",
			mutate:  func(p map[string]any) { p["rating"] = json.Number("-1") },
			wantErr: ErrInvalidRating, wantField: "rating",
		},
		{
			name:    "rating fractional",
			mutate:  func(p map[string]any) { p["rating"] = json.Number("2.5") },
			wantErr: ErrInvalidRating, wantField: "rating",
		},
		{
			name:    "rating word",
			mutate:  func(p map[string]any) { p["rating"] = "three" },
			wantErr: ErrInvalidRating, wantField: "rating",
		},
		{
			name:    "rating bool",
			mutate:  func(p map[string]any) { p["rating"] = true },
			wantErr: ErrInvalidRating, wantField: "rating",
		},

		// URL
		{
			name:    "url without scheme",
			mutate:  func(p map[string]any) { p["url"] = "bookmarks.com" },
			wantErr: ErrInvalidURL, wantField: "url",
			wantMsg: "'url' must be a valid URL",
		},
		{
			name:    "url without host",
			mutate:  func(p map[string]any) { p["url"] = "https://" },
			wantErr: ErrInvalidURL, wantField: "url",
		},
		{
			name:    "url non-web scheme",
			mutate:  func(p map[string]any) { p["url"] = "ftp://example.com/file" },
			wantErr: ErrInvalidURL, wantField: "url",
		},
		{
			name:    "url not a string",
			mutate:  func(p map[string]any) { p["url"] = json.Number("42") },
			wantErr: ErrInvalidURL, wantField: "url",
		},

		// Text type
		{
			name:    "title not a string",
			mutate:  func(p map[string]any) { p["title"] = json.Number("7") },
			wantErr: ErrNotString, wantField: "title",
			wantMsg: "'title' must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			_, err := ValidateNew(p)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateNew() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateNew() = %v, want %v", err, tt.wantErr)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("ValidateNew() error %T is not *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("field = %q, want %q", fe.Field, tt.wantField)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateNew_KeepsURLVerbatim(t *testing.T) {
	p := validPayload()
	p["url"] = "HTTPS://Example.COM/a/../b?q=1#frag"

	nb, err := ValidateNew(p)
	if err != nil {
		t.Fatalf("ValidateNew: %v", err)
	}
	if nb.URL != "HTTPS://Example.COM/a/../b?q=1#frag" {
		t.Errorf("URL = %q, want input unchanged", nb.URL)
	}
}

func TestValidateNew_Result(t *testing.T) {
	p := validPayload()
	p["rating"] = "5"

	nb, err := ValidateNew(p)
	if err != nil {
		t.Fatalf("ValidateNew: %v", err)
	}
	want := NewBookmark{Title: "Go blog", URL: "https://go.dev/blog", Rating: 5, Description: "Official Go blog"}
	if nb != want {
		t.Errorf("ValidateNew() = %+v, want %+v", nb, want)
	}
}

func TestValidatePatch(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		_, err := ValidatePatch(map[string]any{})
		if !errors.Is(err, ErrEmptyPatch) {
			t.Fatalf("ValidatePatch({}) = %v, want ErrEmptyPatch", err)
		}
		want := "Request body must contain at least one of 'title', 'url', 'description', 'rating'"
		if err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	})

	t.Run("all blank", func(t *testing.T) {
		_, err := ValidatePatch(map[string]any{"title": "", "url": nil, "description": " "})
		if !errors.Is(err, ErrEmptyPatch) {
			t.Fatalf("ValidatePatch() = %v, want ErrEmptyPatch", err)
		}
	})

	t.Run("unknown fields only", func(t *testing.T) {
		_, err := ValidatePatch(map[string]any{"id": "abc", "stars": 3})
		if !errors.Is(err, ErrEmptyPatch) {
			t.Fatalf("ValidatePatch() = %v, want ErrEmptyPatch", err)
		}
	})

	t.Run("single title", func(t *testing.T) {
		p, err := ValidatePatch(map[string]any{"title": "New title"})
		if err != nil {
			t.Fatalf("ValidatePatch: %v", err)
		}
		if p.Title == nil || *p.Title != "New title" {
			t.Errorf("Title = %v, want New title", p.Title)
		}
		if p.URL != nil || p.Rating != nil || p.Description != nil {
			t.Errorf("unexpected fields set: %+v", p)
		}
	})

	t.Run("rating zero is a value", func(t *testing.T) {
		p, err := ValidatePatch(map[string]any{"rating": json.Number("0")})
		if err != nil {
			t.Fatalf("ValidatePatch: %v", err)
		}
		if p.Rating == nil || *p.Rating != 0 {
			t.Errorf("Rating = %v, want 0", p.Rating)
		}
	})

	t.Run("blank fields ignored beside a value", func(t *testing.T) {
		p, err := ValidatePatch(map[string]any{"title": "", "description": "kept"})
		if err != nil {
			t.Fatalf("ValidatePatch: %v", err)
		}
		if p.Title != nil {
			t.Errorf("Title = %q, want nil", *p.Title)
		}
		if p.Description == nil || *p.Description != "kept" {
			t.Errorf("Description = %v, want kept", p.Description)
		}
	})

	t.Run("invalid rating", func(t *testing.T) {
		_, err := ValidatePatch(map[string]any{"rating": json.Number("10")})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("ValidatePatch() = %v, want ErrInvalidRating", err)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := ValidatePatch(map[string]any{"url": "example"})
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("ValidatePatch() = %v, want ErrInvalidURL", err)
		}
	})
}
