package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/halemd30/Bookmarks-server/internal/logger"
	"github.com/halemd30/Bookmarks-server/internal/metrics"
	"github.com/halemd30/Bookmarks-server/internal/store"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON object")

type bookmarkCtxKey struct{}

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	bookmarks store.BookmarkStoreIface
	log       logger.Logger
}

// registerBookmarkRoutes registers the bookmark collection and resource routes on r.
// Single-resource routes share bookmarkCtx, which resolves {id} once.
func registerBookmarkRoutes(r chi.Router, bookmarks store.BookmarkStoreIface, log logger.Logger) {
	h := &bookmarksAPIHandler{bookmarks: bookmarks, log: log}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Route("/bookmarks/{id}", func(r chi.Router) {
		r.Use(h.bookmarkCtx)
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// bookmarkCtx looks up the bookmark named by {id}. A missing bookmark ends the
// request with 404 before any verb handler runs; a found one is stored in the
// request context.
func (h *bookmarksAPIHandler) bookmarkCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b, err := h.bookmarks.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				h.log.Info("bookmark not found", logger.String("id", id))
				writeError(w, http.StatusNotFound, msgNotFound)
				return
			}
			h.storeFailure(w, r, "get", err)
			return
		}
		ctx := context.WithValue(r.Context(), bookmarkCtxKey{}, b)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bookmarkFromContext(ctx context.Context) *store.Bookmark {
	b, _ := ctx.Value(bookmarkCtxKey{}).(*store.Bookmark)
	return b
}

// List returns every bookmark.
// GET /api/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns all bookmarks in the store's natural order.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.List(r.Context())
	if err != nil {
		h.storeFailure(w, r, "list", err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create validates and stores a new bookmark.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  Validates title, url, rating (0-5), and description, then stores the bookmark.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  BookmarkResponse
// @Header       201   {string}  Location  "/api/bookmarks/{id}"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		h.rejectBody(w, err)
		return
	}

	nb, err := store.ValidateNew(payload)
	if err != nil {
		h.rejectInvalid(w, err)
		return
	}

	b, err := h.bookmarks.Create(r.Context(), nb)
	if err != nil {
		h.storeFailure(w, r, "create", err)
		return
	}
	h.log.Info("bookmark created", logger.String("id", b.ID))
	h.refreshTotal(r.Context())

	w.Header().Set("Location", path.Join(r.URL.Path, b.ID))
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Get returns a single bookmark by ID.
// GET /api/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toBookmarkResponse(bookmarkFromContext(r.Context())))
}

// Update applies a partial update. Fields left out of the body are untouched.
// PATCH /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Updates any non-empty subset of title, url, description, and rating.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path      string                 true  "Bookmark ID"
// @Param        body  body      UpdateBookmarkRequest  true  "Fields to update"
// @Success      204   "No Content"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	payload, err := decodePayload(w, r)
	if err != nil {
		h.rejectBody(w, err)
		return
	}

	patch, err := store.ValidatePatch(payload)
	if err != nil {
		h.rejectInvalid(w, err)
		return
	}

	n, err := h.bookmarks.Update(r.Context(), b.ID, patch)
	if err != nil {
		h.storeFailure(w, r, "update", err)
		return
	}
	if n == 0 {
		// Deleted between the lookup and the update.
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.log.Info("bookmark updated", logger.String("id", b.ID))

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a bookmark.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id   path      string  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	if err := h.bookmarks.Delete(r.Context(), b.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.storeFailure(w, r, "delete", err)
		return
	}
	h.log.Info("bookmark deleted", logger.String("id", b.ID))
	h.refreshTotal(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// decodePayload reads a single JSON object body. An empty body decodes to an
// empty payload so validation reports the missing fields.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	payload := map[string]any{}
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return payload, nil
}

func (h *bookmarksAPIHandler) rejectBody(w http.ResponseWriter, err error) {
	h.log.Error("unreadable request body", logger.Error(err))
	metrics.ValidationRejectsTotal.WithLabelValues("body").Inc()
	writeError(w, http.StatusBadRequest, msgInvalidBody)
}

func (h *bookmarksAPIHandler) rejectInvalid(w http.ResponseWriter, err error) {
	field := "body"
	var fe *store.FieldError
	if errors.As(err, &fe) && fe.Field != "" {
		field = fe.Field
	}
	h.log.Error("invalid bookmark payload", logger.String("field", field), logger.String("reason", err.Error()))
	metrics.ValidationRejectsTotal.WithLabelValues(field).Inc()
	writeError(w, http.StatusBadRequest, err.Error())
}

// storeFailure logs err and answers 500 without leaking it. When the request
// deadline has passed, middleware.Timeout answers 504 instead.
func (h *bookmarksAPIHandler) storeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
	h.log.Error("bookmark store failure",
		logger.String("op", op),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err),
	)
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}
	writeError(w, http.StatusInternalServerError, msgInternalServer)
}

func (h *bookmarksAPIHandler) refreshTotal(ctx context.Context) {
	n, err := h.bookmarks.Count(ctx)
	if err != nil {
		h.log.Warn("count bookmarks", logger.Error(err))
		return
	}
	metrics.BookmarksTotal.Set(float64(n))
}
