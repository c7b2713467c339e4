package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/rinkside/internal/export"
	"github.com/fortuna/rinkside/internal/ingest/nhl"
	"github.com/fortuna/rinkside/internal/pbp"
	"github.com/fortuna/rinkside/internal/store"
	"github.com/fortuna/rinkside/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db       *store.Database
	events   *repository.EventRepository
	ingester *nhl.Ingester
}

// NewHandler creates a new handler. db may be nil when the service runs
// without persistence; game requests then always assemble on demand.
func NewHandler(db *store.Database, ingester *nhl.Ingester) *Handler {
	h := &Handler{db: db, ingester: ingester}
	if db != nil {
		h.events = repository.NewEventRepository(db)
	}
	return h
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "rinkside",
	})
}

// GetGamePBP handles GET /api/v1/games/{gameID}/pbp.
func (h *Handler) GetGamePBP(w http.ResponseWriter, r *http.Request) {
	table, ok := h.loadGame(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// GetGamePBPCSV handles GET /api/v1/games/{gameID}/pbp.csv.
func (h *Handler) GetGamePBPCSV(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}
	table, ok := h.loadGame(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pbp_%d.csv"`, gameID))
	if err := export.WriteCSV(w, table); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("[rest] write csv for game %d: %v", gameID, err)
	}
}

// loadGame serves a game from the store when present, assembling it from the
// upstream APIs otherwise. Responds with an error itself when it returns
// ok=false.
func (h *Handler) loadGame(w http.ResponseWriter, r *http.Request) (*pbp.Table, bool) {
	gameID, err := parseGameID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return nil, false
	}

	if h.events != nil {
		stored, err := h.events.HasGame(r.Context(), gameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to check stored game", err)
			return nil, false
		}
		if stored {
			table, err := h.events.GetGame(r.Context(), gameID)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to load stored game", err)
				return nil, false
			}
			return table, true
		}
	}

	table, err := h.ingester.BuildGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, nhl.ErrGameUnavailable) {
			respondError(w, http.StatusNotFound, "Game not found", err)
		} else {
			respondError(w, http.StatusBadGateway, "Failed to assemble game", err)
		}
		return nil, false
	}
	return table, true
}

func parseGameID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["gameID"]
	gameID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || gameID <= 0 {
		return 0, fmt.Errorf("malformed game id %q", raw)
	}
	return gameID, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
