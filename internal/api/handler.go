package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/registry"
	"github.com/chainstat/walletstat/internal/scan"
	"github.com/chainstat/walletstat/internal/snapshot"
)

// Handler provides HTTP endpoints for the wallet analytics API.
type Handler struct {
	scans     *scan.Service
	snapshots snapshot.Repository
	counters  *registry.Registry
	version   string
	startedAt time.Time
}

// NewHandler creates a new API handler.
func NewHandler(scans *scan.Service, snapshots snapshot.Repository, counters *registry.Registry, version string) *Handler {
	return &Handler{
		scans:     scans,
		snapshots: snapshots,
		counters:  counters,
		version:   version,
		startedAt: time.Now(),
	}
}

// ScanWallet handles POST /api/v1/scan/{address}.
func (h *Handler) ScanWallet(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	analysis, err := h.scans.AnalyzeWallet(r.Context(), addr)
	if err != nil {
		slog.Error("wallet scan failed", "wallet", addr.Short(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetWalletSummary handles GET /api/v1/wallets/{address}/summary.
func (h *Handler) GetWalletSummary(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	s, err := h.snapshots.Latest(r.Context(), addr.String())
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots found for wallet")
			return
		}
		slog.Error("failed to get latest snapshot", "wallet", addr.Short(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListWalletSnapshots handles GET /api/v1/wallets/{address}/snapshots.
func (h *Handler) ListWalletSnapshots(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 100
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.History(r.Context(), addr.String(), limit)
	if err != nil {
		slog.Error("failed to list snapshots", "wallet", addr.Short(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// ListWallets handles GET /api/v1/wallets.
func (h *Handler) ListWallets(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.snapshots.Addresses(r.Context())
	if err != nil {
		slog.Error("failed to list wallets", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if addrs == nil {
		addrs = []string{}
	}
	writeJSON(w, http.StatusOK, addrs)
}

type clearRequest struct {
	Identity string `json:"identity"`
}

// ClearWallet handles POST /api/v1/wallets/{address}/clear. The request body
// must carry the identity of the ledger owner; anyone else is rejected.
func (h *Handler) ClearWallet(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet address")
		return
	}

	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.scans.ClearWallet(r.Context(), addr, req.Identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			writeError(w, http.StatusForbidden, "identity is not the ledger owner")
			return
		}
		slog.Error("wallet clear failed", "wallet", addr.Short(), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type statusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	registry.Stats
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Stats:         h.counters.Stats(),
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
