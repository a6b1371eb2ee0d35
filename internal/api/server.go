package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured. Mutating
// endpoints require the bearer token when one is set.
func NewServer(addr string, handler *Handler, authToken string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/status", handler.Status)
	mux.HandleFunc("GET /api/v1/wallets", handler.ListWallets)
	mux.HandleFunc("GET /api/v1/wallets/{address}/summary", handler.GetWalletSummary)
	mux.HandleFunc("GET /api/v1/wallets/{address}/snapshots", handler.ListWalletSnapshots)
	mux.Handle("GET /metrics", newMetricsHandler(handler.counters))

	scanHandler := http.HandlerFunc(handler.ScanWallet)
	clearHandler := http.HandlerFunc(handler.ClearWallet)
	if authToken != "" {
		mux.Handle("POST /api/v1/scan/{address}", requireAuth(authToken, scanHandler))
		mux.Handle("POST /api/v1/wallets/{address}/clear", requireAuth(authToken, clearHandler))
	} else {
		mux.Handle("POST /api/v1/scan/{address}", scanHandler)
		mux.Handle("POST /api/v1/wallets/{address}/clear", clearHandler)
	}

	return &http.Server{
		Addr:         addr,
		Handler:      withRequestLogging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		presented := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
