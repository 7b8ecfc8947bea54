package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOversizedBodiesAreRejected(t *testing.T) {
	padding := strings.Repeat("x", maxBodyBytes+1)

	tests := []struct {
		name    string
		path    string
		body    string
		handler func(*Service) http.HandlerFunc
	}{
		{"login", "/api/auth/login",
			`{"email":"ada@uni.ts.it","password":"` + padding + `"}`,
			func(s *Service) http.HandlerFunc { return s.LoginService }},
		{"register", "/api/auth/register",
			`{"email":"ada@uni.ts.it","name":"Ada","password":"` + padding + `"}`,
			func(s *Service) http.HandlerFunc { return s.RegisterService }},
		{"contact", "/api/contact",
			`{"name":"Ada","email":"ada@uni.ts.it","message":"` + padding + `"}`,
			func(s *Service) http.HandlerFunc { return s.ContactService }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockMemberStore)
			svc := newTestService(mockDB)

			r := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			tt.handler(svc)(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockDB.AssertNotCalled(t, "GetMemberByEmail", mock.Anything, mock.Anything)
			mockDB.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockDB.AssertNotCalled(t, "CreateContactMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestDecodeJSON_AcceptsBodyUnderLimit(t *testing.T) {
	message := strings.Repeat("x", 5000)
	r := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ada","email":"ada@uni.ts.it","message":"`+message+`"}`))

	var req struct {
		Message string `json:"message"`
	}
	assert.NoError(t, decodeJSON(httptest.NewRecorder(), r, &req))
	assert.Len(t, req.Message, 5000)
}
