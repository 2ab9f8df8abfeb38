package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookcase/internal/httpx"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type bookRequest struct {
	ISBN        string    `json:"isbn" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Published   string    `json:"published" validate:"required,datestr"`
	Author      string    `json:"author" validate:"required"`
	Genres      GenreList `json:"genres"`
	Rating      *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Description string    `json:"description"`
}

func (req bookRequest) toBook() Book {
	return Book{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Published:   req.Published,
		Author:      req.Author,
		Genres:      []string(req.Genres),
		Rating:      req.Rating,
		Description: req.Description,
	}
}

// List handles GET /books. The page parameter acts as a result-count cap,
// not a page index; absent or unparsable values leave the listing uncapped.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := Query{Search: query.Get("search")}
	if genre := query.Get("genre"); genre != "" {
		q.Genres = SplitGenres(strings.ToLower(genre))
	}
	if limit, err := strconv.ParseInt(query.Get("page"), 10, 64); err == nil && limit > 0 {
		q.Limit = limit
	}

	books, err := h.svc.List(r.Context(), q)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, books)
}

// GetByISBN handles GET /books/{isbn}.
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	b, err := h.svc.GetByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, b)
}

// Create handles POST /books. Requires a session; the created book's
// uploader is the session user.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.svc.Create(r.Context(), caller, req.toBook())
	if err != nil {
		// Duplicate ISBNs are not distinguished from other persistence
		// failures on the wire.
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, created)
}

// Update handles PUT /books/{isbn}. A book uploaded by someone else gets the
// same 400 as a missing one.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.svc.Update(r.Context(), r.PathValue("isbn"), caller, req.toBook()); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /books/{isbn}. Same not-found collapsing as Update;
// a repeated delete gets a 400.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	if err := h.svc.Delete(r.Context(), r.PathValue("isbn"), caller); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.NoContent(w)
}

func callerID(r *http.Request) (primitive.ObjectID, bool) {
	id := httpx.UserIDFrom(r)
	if id == "" {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
