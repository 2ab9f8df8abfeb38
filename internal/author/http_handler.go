package author

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookcase/internal/httpx"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

// List handles GET /authors.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.repo.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, authors)
}

// GetBySSN handles GET /authors/{ssn}.
func (h *HTTPHandler) GetBySSN(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.GetBySSN(r.Context(), r.PathValue("ssn"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "author not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Create handles POST /authors. Any store failure, including missing
// required fields, surfaces as a 500.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a Author
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	// Ignore any client-supplied id.
	a.ID = primitive.NilObjectID

	if err := h.repo.Create(r.Context(), &a); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Delete handles DELETE /authors/{ssn}. Deleting an absent author still
// returns 204.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteBySSN(r.Context(), r.PathValue("ssn")); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.NoContent(w)
}
