package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geosense/geosense/internal/api/middleware"
)

func TestIdentity_UsesHeader(t *testing.T) {
	handler := middleware.Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "asha", middleware.GetUsername(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User", "asha")

	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestIdentity_DefaultsWithoutHeader(t *testing.T) {
	handler := middleware.Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, middleware.DefaultUsername, middleware.GetUsername(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
}

func TestIdentity_TrimsWhitespace(t *testing.T) {
	handler := middleware.Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ravi", middleware.GetUsername(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User", "  ravi  ")

	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestIdentity_BlankHeaderFallsBack(t *testing.T) {
	handler := middleware.Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, middleware.DefaultUsername, middleware.GetUsername(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User", "   ")

	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestGetUsername_DefaultsForMissingContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	assert.Equal(t, middleware.DefaultUsername, middleware.GetUsername(req.Context()))
}
