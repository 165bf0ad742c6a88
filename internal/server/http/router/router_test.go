package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yellowjack/loyaltybot/internal/domain/model"
	"github.com/yellowjack/loyaltybot/internal/server/http/handlers"
	testhelpers "github.com/yellowjack/loyaltybot/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.LoyaltyFacadeStub{
		LedgerFacadeStub: testhelpers.LedgerFacadeStub{
			LeaderboardFn: func(int) []model.LeaderboardEntry {
				return []model.LeaderboardEntry{{UserID: "1001", Points: 50}}
			},
		},
	}
	engine := Setup(facade, logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for liveness, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for leaderboard, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for catalog, got %d", resp.Code)
	}

	body, _ := json.Marshal(map[string]string{"key": "staff-key"})
	req = httptest.NewRequest(http.MethodPost, "/api/staff/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for staff session, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users/1001/profile", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for profile, got %d", resp.Code)
	}
}

func TestSetupStaffContextOnAdjustRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var gotStaff bool
	facade := testhelpers.LoyaltyFacadeStub{
		LedgerFacadeStub: testhelpers.LedgerFacadeStub{
			GrantFn: func(_ context.Context, _, _ string, amount int64, staff bool) (int64, error) {
				gotStaff = staff
				return amount, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body := []byte(`{"actor":"staff-1","target":"1001","amount":5}`)

	req := httptest.NewRequest(http.MethodPost, "/api/points/grant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if gotStaff {
		t.Fatal("expected non-staff without token")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/points/grant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer session-token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if !gotStaff {
		t.Fatal("expected staff flag with valid token")
	}
}

var _ handlers.LoyaltyFacade = (*testhelpers.LoyaltyFacadeStub)(nil)
