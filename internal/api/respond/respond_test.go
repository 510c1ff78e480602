package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, []string{"a"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result": ["a"]}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, map[string]string{"id": "alice_1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"result": {"id": "alice_1"}}`, w.Body.String())
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, http.StatusNotFound, errors.New("reminder not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "reminder not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	Fail(w, http.StatusInternalServerError, nil)
	assert.JSONEq(t, `{"error": "Internal Server Error"}`, w.Body.String())
}
