package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geosense/geosense/internal/api/middleware"
)

func TestContentTypeJSON_SetsDefault(t *testing.T) {
	handler := middleware.ContentTypeJSON(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRequireJSON_RejectsNonJSONBody(t *testing.T) {
	handler := middleware.RequireJSON(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}

func TestRequireJSON_AllowsJSON(t *testing.T) {
	handler := middleware.RequireJSON(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireJSON_AllowsMissingContentType(t *testing.T) {
	handler := middleware.RequireJSON(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireJSON_IgnoresGET(t *testing.T) {
	handler := middleware.RequireJSON(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
