package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvadroide/Devshop-Tycoon/internal/catalog"
	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/player"
	"github.com/alvadroide/Devshop-Tycoon/internal/telemetry"
)

func newTestHandler(t *testing.T) (*Handler, *FakeClock) {
	t.Helper()
	bal := config.Default()
	clk := NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := player.NewMemoryRepo(func() player.State {
		return player.Defaults(bal, clk.Now())
	})
	events := telemetry.NewMemoryRepository()
	h := NewHandler(NewEngine(repo, catalog.DefaultRegistry(), bal, clk, events))
	h.SetEventsRepo(events)
	return h, clk
}

func doJSON(t *testing.T, fn http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	fn(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestStateEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w, out := doJSON(t, h.State, http.MethodGet, "/api/get_game_state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 100, out["money"])
	assert.EqualValues(t, 100, out["energy"])
	assert.EqualValues(t, 100, out["xp_to_next_level"])
	assert.EqualValues(t, 0, out["passive_income"])
	assert.NotNil(t, out["upgrades"])
}

func TestDefinitionsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w, out := doJSON(t, h.Definitions, http.MethodGet, "/api/get_definitions", "")
	require.Equal(t, http.StatusOK, w.Code)

	contracts, ok := out["contracts"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, contracts, "fix_bug")
	assert.Contains(t, contracts, "build_website")
	assert.Contains(t, contracts, "data_analysis")

	items, ok := out["store_items"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, items, "coffee")
	assert.Contains(t, items, "dev_junior")
}

func TestDoContractEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w, out := doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":"fix_bug"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])

	st, ok := out["new_state"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 150, st["money"])
	assert.EqualValues(t, 90, st["energy"])
}

func TestDoContractUnknownIs400(t *testing.T) {
	h, _ := newTestHandler(t)

	w, out := doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no such contract", out["error"])
}

func TestDoContractBadJSONIs400(t *testing.T) {
	h, _ := newTestHandler(t)

	w, out := doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", out["error"])
}

func TestBuyItemAlreadyOwnedIs400(t *testing.T) {
	h, _ := newTestHandler(t)

	// give the player enough money for two chairs up front
	_, out := doJSON(t, h.Reset, http.MethodPost, "/api/reset_game", "")
	assert.Equal(t, true, out["success"])
	for i := 0; i < 13; i++ {
		doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":"fix_bug"}`)
		doJSON(t, h.BuyItem, http.MethodPost, "/api/buy_item", `{"item_id":"coffee"}`)
	}

	w, _ := doJSON(t, h.BuyItem, http.MethodPost, "/api/buy_item", `{"item_id":"ergonomic_chair"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = doJSON(t, h.BuyItem, http.MethodPost, "/api/buy_item", `{"item_id":"ergonomic_chair"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "item already owned", out["error"])
}

func TestResetEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":"build_website"}`)

	w, out := doJSON(t, h.Reset, http.MethodPost, "/api/reset_game", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])

	st, ok := out["new_state"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 100, st["money"])
	assert.EqualValues(t, 100, st["energy"])
	assert.EqualValues(t, 1, st["level"])
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	doJSON(t, h.DoContract, http.MethodPost, "/api/do_contract", `{"contract_id":"fix_bug"}`)
	doJSON(t, h.BuyItem, http.MethodPost, "/api/buy_item", `{"item_id":"coffee"}`)

	w, out := doJSON(t, h.Stats, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["contracts_completed"])
	assert.EqualValues(t, 1, out["items_purchased"])
}

func TestStatsRejectsBadSince(t *testing.T) {
	h, _ := newTestHandler(t)

	w, _ := doJSON(t, h.Stats, http.MethodGet, "/api/stats?since=tomorrow", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	w, _ := doJSON(t, h.State, http.MethodPost, "/api/get_game_state", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w, _ = doJSON(t, h.DoContract, http.MethodGet, "/api/do_contract", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w, _ = doJSON(t, h.Reset, http.MethodGet, "/api/reset_game", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
