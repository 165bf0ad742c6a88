package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/domain/model"
	"github.com/yellowjack/loyaltybot/internal/server/http/dto"
	"github.com/yellowjack/loyaltybot/internal/server/http/middleware"
	testhelpers "github.com/yellowjack/loyaltybot/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRequestPath(t, method, path, path, handler, setup, body, headers)
}

func performRequestPath(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asStaff(c *gin.Context) {
	c.Set(middleware.StaffContextKey, true)
}

func TestIsStaff(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if IsStaff(c) {
		t.Fatal("expected false when not set")
	}

	c.Set(middleware.StaffContextKey, true)
	if !IsStaff(c) {
		t.Fatal("expected true after set")
	}
}

func TestStaffHandlerSession(t *testing.T) {
	body, _ := json.Marshal(dto.StaffSessionRequest{Key: "staff-key"})
	resp := performRequest(t, http.MethodPost, "/session", NewStaffHandler(testhelpers.StaffFacadeStub{}).Session, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "loyaltybot_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named loyaltybot_token")
	}

	var decoded dto.StaffSessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Token != "session-token" {
		t.Fatalf("unexpected token %q", decoded.Token)
	}
}

func TestStaffHandlerSessionPassesKeyThrough(t *testing.T) {
	key := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.StaffSessionRequest{Key: key})
	handler := NewStaffHandler(testhelpers.StaffFacadeStub{SessionFn: func(gotKey string) (string, error) {
		if gotKey != key {
			t.Fatalf("unexpected key passed to facade: %q", gotKey)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/session", handler.Session, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestStaffHandlerSessionFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.StaffFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "disabled", body: []byte(`{"key":"k"}`), facade: testhelpers.StaffFacadeStub{SessionFn: func(string) (string, error) {
			return "", domainErrors.ErrUnauthorized
		}}, status: http.StatusForbidden},
		{name: "wrong key", body: []byte(`{"key":"k"}`), facade: testhelpers.StaffFacadeStub{SessionFn: func(string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"key":"k"}`), facade: testhelpers.StaffFacadeStub{SessionFn: func(string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/session", NewStaffHandler(tt.facade).Session, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestProfileHandlerProfile(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{ProfileFn: func(_ context.Context, userID string) (model.Profile, error) {
		if userID != "1001" {
			t.Fatalf("unexpected user id %q", userID)
		}
		return model.Profile{Points: 2500, Tier: model.TierGuacStar}, nil
	}}
	resp := performRequestPath(t, http.MethodGet, "/users/:id/profile", "/users/1001/profile", NewProfileHandler(facade).Profile, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ProfileResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.UserID != "1001" || decoded.Points != 2500 || decoded.Tier != "Guac Star" {
		t.Fatalf("unexpected profile: %+v", decoded)
	}
}

func TestProfileHandlerBalance(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{CheckFn: func(context.Context, string) (int64, error) {
		return 77, nil
	}}
	resp := performRequestPath(t, http.MethodGet, "/users/:id/balance", "/users/1001/balance", NewProfileHandler(facade).Balance, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.BalanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Points != 77 {
		t.Fatalf("unexpected balance: %+v", decoded)
	}
}

func TestProfileHandlerInventoryEmpty(t *testing.T) {
	resp := performRequestPath(t, http.MethodGet, "/users/:id/inventory", "/users/1001/inventory", NewProfileHandler(testhelpers.LedgerFacadeStub{}).Inventory, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.InventoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Items == nil || len(decoded.Items) != 0 {
		t.Fatalf("expected empty item list, got %+v", decoded)
	}
}

func TestProfileHandlerLeaderboard(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{LeaderboardFn: func(limit int) []model.LeaderboardEntry {
		return []model.LeaderboardEntry{{UserID: "a", Points: 10}, {UserID: "b", Points: 5}}
	}}
	resp := performRequest(t, http.MethodGet, "/leaderboard", NewProfileHandler(facade).Leaderboard, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.LeaderboardEntryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 2 || decoded[0].UserID != "a" {
		t.Fatalf("unexpected leaderboard: %+v", decoded)
	}
}

func TestPointsHandlerGrant(t *testing.T) {
	var gotStaff bool
	facade := testhelpers.LedgerFacadeStub{GrantFn: func(_ context.Context, actorID, targetID string, amount int64, staff bool) (int64, error) {
		gotStaff = staff
		if actorID != "staff-1" || targetID != "1001" || amount != 25 {
			t.Fatalf("unexpected arguments: %q %q %d", actorID, targetID, amount)
		}
		return 25, nil
	}}
	body := []byte(`{"actor":"staff-1","target":"1001","amount":25}`)
	resp := performRequest(t, http.MethodPost, "/grant", NewPointsHandler(facade).Grant, asStaff, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !gotStaff {
		t.Fatal("expected staff flag to reach the facade")
	}
	var decoded dto.AdjustResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.UserID != "1001" || decoded.Points != 25 {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestPointsHandlerAdjustFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.LedgerFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "missing target", body: []byte(`{"actor":"a","amount":5}`), status: http.StatusBadRequest},
		{name: "not staff", body: []byte(`{"actor":"a","target":"b","amount":5}`), facade: testhelpers.LedgerFacadeStub{DeductFn: func(context.Context, string, string, int64, bool) (int64, error) {
			return 0, domainErrors.ErrUnauthorized
		}}, status: http.StatusForbidden},
		{name: "bad amount", body: []byte(`{"actor":"a","target":"b","amount":-5}`), facade: testhelpers.LedgerFacadeStub{DeductFn: func(context.Context, string, string, int64, bool) (int64, error) {
			return 0, domainErrors.ErrInvalidAmount
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"actor":"a","target":"b","amount":5}`), facade: testhelpers.LedgerFacadeStub{DeductFn: func(context.Context, string, string, int64, bool) (int64, error) {
			return 0, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/deduct", NewPointsHandler(tt.facade).Deduct, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestPointsHandlerDaily(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{ClaimDailyFn: func(_ context.Context, userID string) (model.DailyClaim, error) {
		if userID != "1001" {
			t.Fatalf("unexpected user id %q", userID)
		}
		return model.DailyClaim{Awarded: 10, Balance: 30}, nil
	}}
	resp := performRequestPath(t, http.MethodPost, "/users/:id/daily", "/users/1001/daily", NewPointsHandler(facade).Daily, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.DailyResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Awarded != 10 || decoded.Points != 30 {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestPointsHandlerDailyCooldown(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{ClaimDailyFn: func(context.Context, string) (model.DailyClaim, error) {
		return model.DailyClaim{}, domainErrors.CooldownError{Remaining: 90 * time.Minute}
	}}
	resp := performRequestPath(t, http.MethodPost, "/users/:id/daily", "/users/1001/daily", NewPointsHandler(facade).Daily, nil, nil, nil)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
	if got := resp.Header().Get("Retry-After"); got != "5401" {
		t.Fatalf("unexpected Retry-After header %q", got)
	}
}

func TestShopHandlerCatalog(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/catalog", NewShopHandler(testhelpers.LedgerFacadeStub{}).Catalog, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.CatalogItemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "Jarritos" {
		t.Fatalf("unexpected catalog: %+v", decoded)
	}
}

func TestShopHandlerRedeem(t *testing.T) {
	facade := testhelpers.LedgerFacadeStub{RedeemFn: func(_ context.Context, userID, itemName string) (*model.RedemptionResult, error) {
		if userID != "1001" || itemName != "Jarritos" {
			t.Fatalf("unexpected arguments: %q %q", userID, itemName)
		}
		return &model.RedemptionResult{Item: model.CatalogItem{Name: "Jarritos", Cost: 8}, Balance: 2}, nil
	}}
	body := []byte(`{"item":"Jarritos"}`)
	resp := performRequestPath(t, http.MethodPost, "/users/:id/redeem", "/users/1001/redeem", NewShopHandler(facade).Redeem, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.RedeemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Item != "Jarritos" || decoded.Cost != 8 || decoded.Points != 2 {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestShopHandlerRedeemWithoutItemListsCatalog(t *testing.T) {
	body := []byte(`{}`)
	resp := performRequestPath(t, http.MethodPost, "/users/:id/redeem", "/users/1001/redeem", NewShopHandler(testhelpers.LedgerFacadeStub{}).Redeem, nil, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.CatalogItemResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "Jarritos" {
		t.Fatalf("expected catalog listing, got %+v", decoded)
	}
}

func TestShopHandlerRedeemFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.LedgerFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "unknown item", body: []byte(`{"item":"Churros"}`), facade: testhelpers.LedgerFacadeStub{RedeemFn: func(context.Context, string, string) (*model.RedemptionResult, error) {
			return nil, domainErrors.ErrItemNotFound
		}}, status: http.StatusNotFound},
		{name: "too expensive", body: []byte(`{"item":"La Calle Taco"}`), facade: testhelpers.LedgerFacadeStub{RedeemFn: func(context.Context, string, string) (*model.RedemptionResult, error) {
			return nil, domainErrors.ErrInsufficientPoints
		}}, status: http.StatusPaymentRequired},
		{name: "internal", body: []byte(`{"item":"Side"}`), facade: testhelpers.LedgerFacadeStub{RedeemFn: func(context.Context, string, string) (*model.RedemptionResult, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequestPath(t, http.MethodPost, "/users/:id/redeem", "/users/1001/redeem", NewShopHandler(tt.facade).Redeem, nil, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}
