package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthService(t *testing.T) {
	mockDB := new(MockMemberStore)
	svc := newTestService(mockDB)

	w := httptest.NewRecorder()
	svc.HealthService(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API REST Engineering Students Trieste", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	mockDB.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestStatusService(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    string
	}{
		{"database up", nil, "up"},
		{"database down", errors.New("connection refused"), "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockMemberStore)
			svc := newTestService(mockDB)
			mockDB.On("Ping", mock.Anything).Return(tt.pingErr)

			w := httptest.NewRecorder()
			svc.StatusService(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			var body models.HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "ok", body.Status)
			assert.Equal(t, tt.want, body.Database)
		})
	}
}

func TestContentService(t *testing.T) {
	svc := newTestService(new(MockMemberStore))
	site, err := content.Load()
	require.NoError(t, err)
	svc.Content = site

	w := httptest.NewRecorder()
	svc.ContentService(w, httptest.NewRequest(http.MethodGet, "/api/content", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body content.Site
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body.Events, 3)
}
