package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"splitledger/internal/auth"
	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/service"
	"splitledger/internal/storage/sqlite"
)

// testAPI bundles an httptest server over a real router and SQLite store.
type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	notifier := notify.NewStoreNotifier(store)

	handlers := NewHandlers(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewGroupService(store),
		service.NewExpenseService(store, notifier),
		service.NewSettlementService(store, notifier),
		service.NewBalanceService(store),
		service.NewNotificationService(store),
	)
	router := NewRouter(RouterDependencies{
		Handlers:   handlers,
		JWTManager: jwtManager,
		Probe:      store.Ping,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testAPI{t: t, server: server}
}

// do sends a JSON request and decodes the response into out (if non-nil).
func (a *testAPI) do(method, path, token string, body, out any) int {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	if err != nil {
		a.t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			a.t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (a *testAPI) registerUser(name string) (userID, token string) {
	a.t.Helper()
	var resp authResponse
	status := a.do(http.MethodPost, "/api/auth/register", "", registerRequest{
		Email:    fmt.Sprintf("%s@example.com", name),
		Name:     name,
		Password: "hunter2hunter2",
	}, &resp)
	if status != http.StatusCreated {
		a.t.Fatalf("register %s: status %d", name, status)
	}
	return resp.User.ID, resp.Token
}

func TestAPI_ExpenseToSettlementFlow(t *testing.T) {
	api := newTestAPI(t)

	aliceID, aliceToken := api.registerUser("alice")
	bobID, bobToken := api.registerUser("bob")
	carolID, _ := api.registerUser("carol")

	var group models.Group
	status := api.do(http.MethodPost, "/api/groups", aliceToken, createGroupRequest{
		Name:    "Goa Trip",
		Members: []models.UserID{models.UserID(aliceID), models.UserID(bobID), models.UserID(carolID)},
	}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	var expense models.Expense
	status = api.do(http.MethodPost, "/api/groups/"+group.ID+"/expenses", aliceToken, map[string]any{
		"title":        "Dinner",
		"amount":       "300",
		"participants": []string{aliceID, bobID, carolID},
		"strategy":     "equal",
	}, &expense)
	if status != http.StatusCreated {
		t.Fatalf("create expense: status %d", status)
	}
	if len(expense.Obligations) != 2 {
		t.Fatalf("expected 2 obligations in response, got %+v", expense.Obligations)
	}

	var balances []ledger.NetBalance
	status = api.do(http.MethodGet, "/api/groups/"+group.ID+"/balances", bobToken, nil, &balances)
	if status != http.StatusOK {
		t.Fatalf("group balances: status %d", status)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 unsettled pairs, got %+v", balances)
	}
	for _, b := range balances {
		if b.To != models.UserID(aliceID) || b.Amount.String() != "100" {
			t.Errorf("unexpected balance: %+v", b)
		}
	}

	status = api.do(http.MethodPost, "/api/groups/"+group.ID+"/settlements", bobToken, map[string]any{
		"to":     aliceID,
		"amount": "100",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create settlement: status %d", status)
	}

	status = api.do(http.MethodGet, "/api/groups/"+group.ID+"/balances", bobToken, nil, &balances)
	if status != http.StatusOK {
		t.Fatalf("group balances: status %d", status)
	}
	if len(balances) != 1 || balances[0].From != models.UserID(carolID) {
		t.Fatalf("expected only carol to still owe, got %+v", balances)
	}

	var transfers []ledger.Transfer
	status = api.do(http.MethodGet, "/api/groups/"+group.ID+"/balances/simplified", bobToken, nil, &transfers)
	if status != http.StatusOK {
		t.Fatalf("simplified balances: status %d", status)
	}
	if len(transfers) != 1 || transfers[0].From != models.UserID(carolID) || transfers[0].To != models.UserID(aliceID) {
		t.Fatalf("unexpected transfers: %+v", transfers)
	}

	var myBalances []ledger.NetBalance
	status = api.do(http.MethodGet, "/api/balances/me", bobToken, nil, &myBalances)
	if status != http.StatusOK {
		t.Fatalf("my balances: status %d", status)
	}
	if len(myBalances) != 0 {
		t.Fatalf("bob settled up, expected no balances, got %+v", myBalances)
	}

	var notifications []*models.Notification
	status = api.do(http.MethodGet, "/api/notifications", bobToken, nil, &notifications)
	if status != http.StatusOK {
		t.Fatalf("notifications: status %d", status)
	}
	if len(notifications) != 1 || notifications[0].Type != models.ActivityExpenseAdded {
		t.Fatalf("unexpected notifications: %+v", notifications)
	}
}

func TestAPI_AuthAndMembership(t *testing.T) {
	api := newTestAPI(t)

	_, aliceToken := api.registerUser("alice")
	_, strangerToken := api.registerUser("mallory")

	var group models.Group
	status := api.do(http.MethodPost, "/api/groups", aliceToken, createGroupRequest{Name: "Flat"}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	t.Run("missing token rejected", func(t *testing.T) {
		if status := api.do(http.MethodGet, "/api/groups", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if status := api.do(http.MethodGet, "/api/groups", "not-a-token", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("non-member gets 403", func(t *testing.T) {
		if status := api.do(http.MethodGet, "/api/groups/"+group.ID+"/balances", strangerToken, nil, nil); status != http.StatusForbidden {
			t.Errorf("expected 403, got %d", status)
		}
	})

	t.Run("unknown group gets 404", func(t *testing.T) {
		if status := api.do(http.MethodGet, "/api/groups/missing/balances", aliceToken, nil, nil); status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("wrong login rejected", func(t *testing.T) {
		status := api.do(http.MethodPost, "/api/auth/login", "", loginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})
}

func TestAPI_BadSplitReturns400(t *testing.T) {
	api := newTestAPI(t)
	aliceID, aliceToken := api.registerUser("alice")
	bobID, _ := api.registerUser("bob")

	var group models.Group
	status := api.do(http.MethodPost, "/api/groups", aliceToken, createGroupRequest{
		Name:    "Flat",
		Members: []models.UserID{models.UserID(aliceID), models.UserID(bobID)},
	}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d", status)
	}

	status = api.do(http.MethodPost, "/api/groups/"+group.ID+"/expenses", aliceToken, map[string]any{
		"title":    "Broken",
		"amount":   "100",
		"strategy": "unequal",
		"shares": []map[string]any{
			{"user": bobID, "amount": "30"},
		},
	}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched shares, got %d", status)
	}

	status = api.do(http.MethodPost, "/api/groups/"+group.ID+"/expenses", aliceToken, map[string]any{
		"title":    "Unknown",
		"amount":   "10",
		"strategy": "vibes",
	}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown strategy, got %d", status)
	}
}

func TestAPI_Healthz(t *testing.T) {
	api := newTestAPI(t)
	var payload map[string]any
	if status := api.do(http.MethodGet, "/healthz", "", nil, &payload); status != http.StatusOK {
		t.Fatalf("healthz: status %d", status)
	}
	if payload["status"] != "ok" {
		t.Errorf("unexpected health payload: %v", payload)
	}
}
