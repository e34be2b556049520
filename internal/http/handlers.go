package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/mauv0809/roster-sync/internal/scheduler"
)

// cacheEntry is one hash cache entry as listed by /cache.
type cacheEntry struct {
	Key         string    `json:"key"`
	Hash        string    `json:"hash,omitempty"`
	Invalidated bool      `json:"invalidated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		writeJSON(w, http.StatusOK, healthResponse{Status: "OK", LastCycle: s.Trigger.Status()})
	}
}

func (s *Server) ListCacheHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := s.Cache.Entries()
		out := make([]cacheEntry, 0, len(entries))
		for key, e := range entries {
			out = append(out, cacheEntry{Key: key, Hash: e.Hash, Invalidated: e.Invalidated, UpdatedAt: e.UpdatedAt})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) InvalidateCacheHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			http.Error(w, "Missing 'key' parameter", http.StatusBadRequest)
			return
		}
		log.Info("Invalidating cache entry on request", "key", key)
		s.Cache.Invalidate(key)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Invalidated %s", key)
	}
}

func (s *Server) ListRunsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := history.DefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		var (
			records []history.Record
			err     error
		)
		if tournamentID := r.URL.Query().Get("tournament"); tournamentID != "" {
			records, err = s.History.ListByTournament(tournamentID, limit)
		} else {
			records, err = s.History.ListRecent(limit)
		}
		if err != nil {
			log.Error("Failed to list publish history", "error", err)
			http.Error(w, "Failed to list runs", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Trigger.RunNow()
		if errors.Is(err, scheduler.ErrCycleRunning) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			log.Error("Failed to trigger sync cycle", "error", err)
			http.Error(w, "Failed to trigger sync", http.StatusInternalServerError)
			return
		}
		log.Info("Sync cycle triggered on request")
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, "Sync triggered")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
