package game

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alvadroide/Devshop-Tycoon/internal/telemetry"
)

type Handler struct {
	engine *Engine
	events telemetry.Repository
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// SetEventsRepo enables the /api/stats endpoint.
func (h *Handler) SetEventsRepo(events telemetry.Repository) {
	h.events = events
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// writeOutcome maps engine results onto the wire: domain-rule failures come
// back as 400 with {"error": msg}, infrastructure faults as 500.
func (h *Handler) writeOutcome(w http.ResponseWriter, snap any, err error) {
	if err != nil {
		if IsValidationError(err) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"new_state": snap,
	})
}

// GET /api/get_game_state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := h.engine.GetState(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GET /api/get_definitions
func (h *Handler) Definitions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	contracts, items := h.engine.Definitions()
	writeJSON(w, http.StatusOK, map[string]any{
		"contracts":   contracts,
		"store_items": items,
	})
}

// POST /api/do_contract
func (h *Handler) DoContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		ContractID string `json:"contract_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	snap, err := h.engine.DoContract(r.Context(), in.ContractID)
	h.writeOutcome(w, snap, err)
}

// POST /api/buy_item
func (h *Handler) BuyItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		ItemID string `json:"item_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	snap, err := h.engine.BuyItem(r.Context(), in.ItemID)
	h.writeOutcome(w, snap, err)
}

// POST /api/reset_game
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap, err := h.engine.Reset(r.Context())
	h.writeOutcome(w, snap, err)
}

// GET /api/stats?since=2026-01-02
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.events == nil {
		writeErr(w, http.StatusNotFound, "stats not enabled")
		return
	}

	since := time.Time{}
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, `invalid "since" date, want YYYY-MM-DD`)
			return
		}
		since = parsed
	}

	events, err := h.events.GetEvents(since, nil)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not read events")
		return
	}
	stats, err := telemetry.CalculateStats(events, since)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not aggregate events")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
