package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/middleware"
)

// RouterDependencies collects everything the router needs.
type RouterDependencies struct {
	Handlers       *Handlers
	JWTManager     *auth.JWTManager
	Probe          func(ctx context.Context) error
	AllowedOrigins []string
}

// NewRouter wires all API routes. Routes under /api except auth require a
// valid bearer token.
func NewRouter(deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()
	h := deps.Handlers

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if deps.Probe != nil {
			if err := deps.Probe(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]any{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)

	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAuth(deps.JWTManager, fn))
	}

	protected("POST /api/groups", h.createGroup)
	protected("GET /api/groups", h.listGroups)
	protected("GET /api/groups/{groupID}", h.getGroup)
	protected("POST /api/groups/{groupID}/members", h.addGroupMembers)
	protected("GET /api/groups/{groupID}/activity", h.listGroupActivity)

	protected("POST /api/groups/{groupID}/expenses", h.createExpense)
	protected("GET /api/groups/{groupID}/expenses", h.listGroupExpenses)
	protected("GET /api/expenses/{expenseID}", h.getExpense)
	protected("PUT /api/expenses/{expenseID}", h.updateExpense)
	protected("DELETE /api/expenses/{expenseID}", h.deleteExpense)

	protected("POST /api/groups/{groupID}/settlements", h.createSettlement)
	protected("GET /api/groups/{groupID}/settlements", h.listGroupSettlements)

	protected("GET /api/groups/{groupID}/balances", h.groupBalances)
	protected("GET /api/groups/{groupID}/balances/simplified", h.simplifyGroup)
	protected("GET /api/balances/me", h.myBalances)

	protected("GET /api/notifications", h.listNotifications)
	protected("POST /api/notifications/{notificationID}/read", h.markNotificationRead)

	handler := middleware.Logging(middleware.Metrics(mux))
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins)(handler)
	}
	return handler
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}
	_, allowAny := normalized["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := normalized[origin]; !ok && !allowAny {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
