package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/halemd30/Bookmarks-server/internal/api"
	"github.com/halemd30/Bookmarks-server/internal/auth"
	"github.com/halemd30/Bookmarks-server/internal/store"
	"github.com/halemd30/Bookmarks-server/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and store needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	Bookmarks *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and mounts the API router at /api with a real store and bearer check.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	bs := store.NewBookmarkStore(testutil.NewTestDB(t))
	return &testEnv{
		Router:    mountAPI(bs, auth.NewBearerTokenMiddleware(testToken)),
		Bookmarks: bs,
	}
}

func mountAPI(bs store.BookmarkStoreIface, bearer *auth.BearerTokenMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Mount("/api", api.NewAPIRouter(api.Deps{
		BearerAuth: bearer,
		Bookmarks:  bs,
	}))
	return r
}

// fixtures mirror a typical seeded table.
func fixtures() []store.NewBookmark {
	return []store.NewBookmark{
		{Title: "First test post!", URL: "https://firsttest.com", Rating: 3, Description: "Lorem ipsum dolor sit amet, consectetur adipisicing elit."},
		{Title: "Second test post!", URL: "https://secondtest.com", Rating: 1, Description: "Cum, exercitationem cupiditate dignissimos est perspiciatis."},
		{Title: "Third test post!", URL: "https://firsttest.com", Rating: 2, Description: "Possimus, voluptate? Necessitatibus, reiciendis?"},
		{Title: "Fourth test post!", URL: "https://fourthtest.com", Rating: 5, Description: "Earum molestiae accusamus veniam consectetur tempora."},
	}
}

// seedBookmarks inserts every fixture and returns the stored rows in order.
func seedBookmarks(t *testing.T, env *testEnv) []*store.Bookmark {
	t.Helper()
	var out []*store.Bookmark
	for _, nb := range fixtures() {
		b, err := env.Bookmarks.Create(context.Background(), nb)
		if err != nil {
			t.Fatalf("seed bookmark: %v", err)
		}
		out = append(out, b)
	}
	return out
}

// do sends an authenticated request through the router.
func do(t *testing.T, env *testEnv, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBookmark(t *testing.T, rec *httptest.ResponseRecorder) api.BookmarkResponse {
	t.Helper()
	var resp api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode bookmark: %v; body: %s", err, rec.Body.String())
	}
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v; body: %s", err, rec.Body.String())
	}
	return resp.Error.Message
}

func countRows(t *testing.T, env *testEnv) int {
	t.Helper()
	n, err := env.Bookmarks.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
