package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	userToken, _ := jwtService.GenerateJWT("user-1", false, time.Now().Add(time.Hour))
	adminToken, _ := jwtService.GenerateJWT("admin-1", true, time.Now().Add(time.Hour))

	var seenUser string
	var seenAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = r.Context().Value(UserIDKey).(string)
		seenAdmin, _ = r.Context().Value(AdminKey).(bool)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		header       string
		adminOnly    bool
		expectedCode int
		expectedUser string
	}{
		{name: "No header", expectedCode: http.StatusUnauthorized},
		{name: "Not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "User token", header: "Bearer " + userToken, expectedCode: http.StatusOK, expectedUser: "user-1"},
		{name: "User token on admin route", header: "Bearer " + userToken, adminOnly: true, expectedCode: http.StatusForbidden},
		{name: "Admin token on admin route", header: "Bearer " + adminToken, adminOnly: true, expectedCode: http.StatusOK, expectedUser: "admin-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenAdmin = "", false
			var handler http.Handler = next
			if tt.adminOnly {
				handler = AdminMiddleware(handler)
			}
			handler = AuthMiddleware(jwtService)(handler)

			r := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedUser, seenUser)
			if tt.adminOnly && tt.expectedCode == http.StatusOK {
				assert.True(t, seenAdmin)
			}
		})
	}
}
