package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMissingField is returned when a required field is absent, null, or blank.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidRating is returned when rating is not an integer in [0, 5].
	ErrInvalidRating = errors.New("rating must be an integer between 0 and 5")

	// ErrInvalidURL is returned when url is not an absolute http(s) URI with a host.
	ErrInvalidURL = errors.New("url must be an absolute http or https URI")

	// ErrNotString is returned when a text field carries a non-string JSON value.
	ErrNotString = errors.New("field must be a string")

	// ErrEmptyPatch is returned when a partial update carries no usable field.
	ErrEmptyPatch = errors.New("patch has no fields")
)

const (
	MinRating = 0
	MaxRating = 5
)

// requiredFields is the order in which presence is checked. The first missing
// field is the one reported.
var requiredFields = []string{"title", "url", "rating", "description"}

// FieldError reports which field failed validation. Error returns the message
// sent to API clients.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingField):
		return fmt.Sprintf("missing '%s' in request body", e.Field)
	case errors.Is(e.Err, ErrInvalidRating):
		return fmt.Sprintf("'rating' must be a number between %d and %d", MinRating, MaxRating)
	case errors.Is(e.Err, ErrInvalidURL):
		return "'url' must be a valid URL"
	case errors.Is(e.Err, ErrNotString):
		return fmt.Sprintf("'%s' must be a string", e.Field)
	case errors.Is(e.Err, ErrEmptyPatch):
		return "Request body must contain at least one of 'title', 'url', 'description', 'rating'"
	default:
		return fmt.Sprintf("invalid '%s': %v", e.Field, e.Err)
	}
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValidateNew checks a create payload: presence of every field first (title,
// url, rating, description), then the rating, then the URL.
func ValidateNew(payload map[string]any) (NewBookmark, error) {
	for _, f := range requiredFields {
		if !present(payload[f]) {
			return NewBookmark{}, &FieldError{Field: f, Err: ErrMissingField}
		}
	}

	rating, err := ValidateRating(payload["rating"])
	if err != nil {
		return NewBookmark{}, err
	}
	u, err := ValidateURL(payload["url"])
	if err != nil {
		return NewBookmark{}, err
	}
	title, err := textField("title", payload["title"])
	if err != nil {
		return NewBookmark{}, err
	}
	desc, err := textField("description", payload["description"])
	if err != nil {
		return NewBookmark{}, err
	}

	return NewBookmark{Title: title, URL: u, Rating: rating, Description: desc}, nil
}

// ValidatePatch checks a partial-update payload. Fields that are absent, null,
// or blank are ignored; at least one field must remain. Rating 0 counts as a
// value.
func ValidatePatch(payload map[string]any) (BookmarkPatch, error) {
	var p BookmarkPatch

	if v := payload["rating"]; present(v) {
		rating, err := ValidateRating(v)
		if err != nil {
			return BookmarkPatch{}, err
		}
		p.Rating = &rating
	}
	if v := payload["url"]; present(v) {
		u, err := ValidateURL(v)
		if err != nil {
			return BookmarkPatch{}, err
		}
		p.URL = &u
	}
	if v := payload["title"]; present(v) {
		title, err := textField("title", v)
		if err != nil {
			return BookmarkPatch{}, err
		}
		p.Title = &title
	}
	if v := payload["description"]; present(v) {
		desc, err := textField("description", v)
		if err != nil {
			return BookmarkPatch{}, err
		}
		p.Description = &desc
	}

	if p.Empty() {
		return BookmarkPatch{}, &FieldError{Err: ErrEmptyPatch}
	}
	return p, nil
}

// ValidateRating coerces v (a JSON number or a numeric string) to an integer
// rating in [MinRating, MaxRating].
func ValidateRating(v any) (int, error) {
	invalid := &FieldError{Field: "rating", Err: ErrInvalidRating}

	var f float64
	switch r := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(r.String(), 64)
		if err != nil {
			return 0, invalid
		}
		f = parsed
	case float64:
		f = r
	case int:
		f = float64(r)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return 0, invalid
		}
		f = parsed
	default:
		return 0, invalid
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalid
	}
	if f < MinRating || f > MaxRating {
		return 0, invalid
	}
	return int(f), nil
}

// ValidateURL accepts an absolute http or https URI with a non-empty host. The
// input is returned verbatim; no normalization is applied.
func ValidateURL(v any) (string, error) {
	invalid := &FieldError{Field: "url", Err: ErrInvalidURL}

	s, ok := v.(string)
	if !ok {
		return "", invalid
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return "", invalid
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", invalid
	}
	if u.Hostname() == "" {
		return "", invalid
	}
	return s, nil
}

func textField(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Field: name, Err: ErrNotString}
	}
	return s, nil
}

// present reports whether v carries a value: not absent, not JSON null, and not
// a blank string.
func present(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(s) != ""
	default:
		return true
	}
}
