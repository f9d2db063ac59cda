package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/creditmeter/internal/pricing"
	"github.com/GlebRadaev/creditmeter/internal/service"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
	"github.com/GlebRadaev/creditmeter/internal/service/usageservice"
	"github.com/GlebRadaev/creditmeter/pkg/auth"
)

func TestNew(t *testing.T) {
	credits := creditservice.New(nil, pricing.DefaultOptions())
	services := &service.Services{
		CreditService: credits,
		UsageService:  usageservice.New(nil, credits, nil),
	}

	h := New(services, auth.NewJWTService("secret"))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.CreditsHandler)
	assert.NotNil(t, h.AdminHandler)
	assert.NotNil(t, h.UsageHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCreditsHandler := NewMockCreditsHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)
	mockUsageHandler := NewMockUsageHandler(ctrl)

	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	mockCreditsHandler.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockCreditsHandler.EXPECT().GetLedger(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockCreditsHandler.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockAdminHandler.EXPECT().Adjust(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockAdminHandler.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockAdminHandler.EXPECT().Reconcile(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockUsageHandler.EXPECT().SubmitGeneration(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	tokens := auth.NewJWTService("secret")
	userToken, _ := tokens.GenerateJWT("user-1", false, time.Now().Add(time.Hour))
	adminToken, _ := tokens.GenerateJWT("admin-1", true, time.Now().Add(time.Hour))

	h := &Handlers{
		CreditsHandler: mockCreditsHandler,
		AdminHandler:   mockAdminHandler,
		UsageHandler:   mockUsageHandler,
		tokens:         tokens,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"GET", "/api/credits", "", http.StatusUnauthorized},
		{"GET", "/api/credits/ledger", "", http.StatusUnauthorized},
		{"PUT", "/api/credits/settings", "", http.StatusUnauthorized},
		{"POST", "/api/usage/generations", "", http.StatusUnauthorized},
		{"GET", "/api/admin/credits/user-1", "", http.StatusUnauthorized},
		{"GET", "/api/credits", userToken, http.StatusOK},
		{"GET", "/api/credits/ledger", userToken, http.StatusOK},
		{"PUT", "/api/credits/settings", userToken, http.StatusOK},
		{"POST", "/api/usage/generations", userToken, http.StatusOK},
		{"GET", "/api/admin/credits/user-1", userToken, http.StatusForbidden},
		{"POST", "/api/admin/credits/user-1/adjustments", userToken, http.StatusForbidden},
		{"GET", "/api/admin/credits/user-1/reconcile", userToken, http.StatusForbidden},
		{"GET", "/api/admin/credits/user-1", adminToken, http.StatusOK},
		{"POST", "/api/admin/credits/user-1/adjustments", adminToken, http.StatusOK},
		{"GET", "/api/admin/credits/user-1/reconcile", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
