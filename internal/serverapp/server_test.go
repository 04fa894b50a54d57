package serverapp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *game.FakeClock) {
	t.Helper()
	clk := game.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	handler, cleanup, err := NewHandler(Options{
		Config:  config.Defaults(),
		DataDir: t.TempDir(),
		Clock:   clk,
	})
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		_ = cleanup()
	})
	return srv, clk
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return resp.StatusCode, out
}

func postJSON(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return resp.StatusCode, out
}

func TestFullGameFlowOverHTTP(t *testing.T) {
	srv, clk := newTestServer(t)

	code, state := getJSON(t, srv.URL+"/api/get_game_state")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 100, state["money"])

	code, out := postJSON(t, srv.URL+"/api/do_contract", `{"contract_id":"fix_bug"}`)
	require.Equal(t, http.StatusOK, code)
	st := out["new_state"].(map[string]any)
	assert.EqualValues(t, 150, st["money"])
	assert.EqualValues(t, 90, st["energy"])

	// hiring is too expensive at $150
	code, out = postJSON(t, srv.URL+"/api/buy_item", `{"item_id":"dev_junior"}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "not enough money", out["error"])

	// passive income accrues once a dev is hired and the clock moves
	_, _ = postJSON(t, srv.URL+"/api/reset_game", "{}")
	code, _ = postJSON(t, srv.URL+"/api/do_contract", `{"contract_id":"data_analysis"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = postJSON(t, srv.URL+"/api/do_contract", `{"contract_id":"build_website"}`)
	require.Equal(t, http.StatusOK, code)
	// 100 + 450 + 200 = 750 money, enough for the first $500 hire
	code, out = postJSON(t, srv.URL+"/api/buy_item", `{"item_id":"dev_junior"}`)
	require.Equal(t, http.StatusOK, code)
	st = out["new_state"].(map[string]any)
	assert.EqualValues(t, 1, st["junior_devs"])
	assert.EqualValues(t, 10, st["passive_income"])

	clk.Advance(30 * time.Second)
	code, state = getJSON(t, srv.URL+"/api/get_game_state")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 250+300, state["money"])
}

func TestHealthAndReadiness(t *testing.T) {
	srv, _ := newTestServer(t)

	code, out := getJSON(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["ok"])

	code, out = getJSON(t, srv.URL+"/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["ok"])
}

func TestIndexPageServed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Devshop Tycoon")
	assert.Contains(t, string(b), "contracts-list")
}

func TestStaticAssetsServed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/static/js/game.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDHeaderSet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
