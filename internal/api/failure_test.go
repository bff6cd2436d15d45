package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halemd30/Bookmarks-server/internal/store"
)

func newBrokenEnv(t *testing.T) (*testEnv, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	bs := store.NewBookmarkStore(sqlx.NewDb(mockDB, "sqlite"))
	return &testEnv{Router: mountAPI(bs, nil), Bookmarks: bs}, mock
}

func TestBookmarks_StoreFailure(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   any
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name:   "list",
			method: "GET",
			target: "/api/bookmarks",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM bookmarks").WillReturnError(errors.New("connection refused"))
			},
		},
		{
			name:   "get",
			method: "GET",
			target: "/api/bookmarks/abc",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM bookmarks").WillReturnError(errors.New("disk I/O error"))
			},
		},
		{
			name:   "create",
			method: "POST",
			target: "/api/bookmarks",
			body:   validBody(),
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO bookmarks").WillReturnError(errors.New("database is locked"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, mock := newBrokenEnv(t)
			tt.expect(mock)

			rec := do(t, env, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "internal server error", decodeError(t, rec))
			assert.NotContains(t, rec.Body.String(), "database")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
