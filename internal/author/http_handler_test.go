package author

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	authors map[string]Author // keyed by ssn
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{authors: make(map[string]Author)}
}

func (f *fakeRepo) List(_ context.Context) ([]Author, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []Author{}
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetBySSN(_ context.Context, ssn string) (Author, error) {
	if f.err != nil {
		return Author{}, f.err
	}
	a, ok := f.authors[ssn]
	if !ok {
		return Author{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) Create(_ context.Context, a *Author) error {
	if f.err != nil {
		return f.err
	}
	if a.SSN == "" || a.Name == "" || a.Gender == "" {
		return ErrInvalid
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.authors[a.SSN] = *a
	return nil
}

func (f *fakeRepo) DeleteBySSN(_ context.Context, ssn string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.authors, ssn)
	return nil
}

func TestHTTPHandler_CreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHTTPHandler(repo)

	body := `{"ssn":"123-45-6789","name":"N","gender":"f","birth":"1950-06-01","address":"somewhere"}`
	w := httptest.NewRecorder()
	handler.Create(w, httptest.NewRequest(http.MethodPost, "/authors", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var created Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "123-45-6789", created.SSN)
	assert.False(t, created.ID.IsZero())

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/authors/123-45-6789", nil)
	r.SetPathValue("ssn", "123-45-6789")
	handler.GetBySSN(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "N", got.Name)
	assert.Equal(t, "1950-06-01", got.Birth)
}

func TestHTTPHandler_Create_MissingFieldsIsServerError(t *testing.T) {
	// No handler-level validation on author routes: the store rejects the
	// record and the route reports a 500.
	repo := newFakeRepo()
	handler := NewHTTPHandler(repo)

	w := httptest.NewRecorder()
	handler.Create(w, httptest.NewRequest(http.MethodPost, "/authors", strings.NewReader(`{"ssn":"1"}`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTTPHandler_List(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHTTPHandler(repo)
	require.NoError(t, repo.Create(context.Background(), &Author{SSN: "1", Name: "N", Gender: "m"}))

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/authors", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var authors []Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
	assert.Len(t, authors, 1)
}

func TestHTTPHandler_GetBySSN_NotFound(t *testing.T) {
	handler := NewHTTPHandler(newFakeRepo())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/authors/404", nil)
	r.SetPathValue("ssn", "404")
	handler.GetBySSN(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_Delete(t *testing.T) {
	repo := newFakeRepo()
	handler := NewHTTPHandler(repo)
	require.NoError(t, repo.Create(context.Background(), &Author{SSN: "1", Name: "N", Gender: "m"}))

	del := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/authors/1", nil)
		r.SetPathValue("ssn", "1")
		handler.Delete(w, r)
		return w
	}

	assert.Equal(t, http.StatusNoContent, del().Code)
	// Deleting an absent author still returns 204.
	assert.Equal(t, http.StatusNoContent, del().Code)
}

func TestHTTPHandler_StoreErrorsAre500(t *testing.T) {
	repo := newFakeRepo()
	repo.err = context.DeadlineExceeded
	handler := NewHTTPHandler(repo)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/authors", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/authors/1", nil)
	r.SetPathValue("ssn", "1")
	handler.Delete(w, r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
