package prometheus

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prysmaticlabs/gasper/runtime"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

type mockService struct {
	status error
}

func (*mockService) Start() {}

func (*mockService) Stop() error {
	return nil
}

func (m *mockService) Status() error {
	return m.status
}

func TestHealthz(t *testing.T) {
	registry := runtime.NewServiceRegistry()
	m := &mockService{}
	require.NoError(t, registry.RegisterService(m))
	s := NewService("", registry)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	s.healthzHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, strings.Contains(rr.Body.String(), "*prometheus.mockService: OK"), rr.Body.String())

	m.status = errors.New("something bad has happened")
	rr = httptest.NewRecorder()
	s.healthzHandler(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, true, strings.Contains(rr.Body.String(), "ERROR something bad has happened"), rr.Body.String())
}

func TestHealthz_JSON(t *testing.T) {
	registry := runtime.NewServiceRegistry()
	require.NoError(t, registry.RegisterService(&mockService{}))
	s := NewService("", registry)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("Accept", contentTypeJSON)
	rr := httptest.NewRecorder()
	s.healthzHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeJSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, true, strings.Contains(rr.Body.String(), `"healthy":true`), rr.Body.String())
}

func TestAdditionalHandlers(t *testing.T) {
	called := false
	s := NewService("", runtime.NewServiceRegistry(), Handler{
		Path: "/extra",
		Handler: func(w http.ResponseWriter, _ *http.Request) {
			called = true
		},
	})
	rr := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/extra", nil))
	assert.Equal(t, true, called)
	assert.NoError(t, s.Status())
}
