package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/alvadroide/Devshop-Tycoon/internal/catalog"
	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/game"
	"github.com/alvadroide/Devshop-Tycoon/internal/httpmw"
	"github.com/alvadroide/Devshop-Tycoon/internal/player"
	"github.com/alvadroide/Devshop-Tycoon/internal/telemetry"
	staticfiles "github.com/alvadroide/Devshop-Tycoon/static"
	"github.com/alvadroide/Devshop-Tycoon/ui/page"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
	Clock         game.Clock
}

// NewHandler wires the full HTTP surface. The returned cleanup closes the
// player database and must be called on shutdown.
func NewHandler(opts Options) (http.Handler, func() error, error) {
	if opts.Config == nil {
		return nil, nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Data.Dir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.RealClock{}
	}

	balance := opts.Config.Balance

	playerRepo, err := player.NewSQLiteRepo(
		filepath.Join(opts.DataDir, "game.db"),
		func() player.State { return player.Defaults(balance, clock.Now()) },
	)
	if err != nil {
		return nil, nil, err
	}

	events := telemetry.NewMemoryRepository()
	engine := game.NewEngine(playerRepo, catalog.DefaultRegistry(), balance, clock, events)
	gameHandler := game.NewHandler(engine)
	gameHandler.SetEventsRepo(events)

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "devshop-tycoon",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := playerRepo.Load(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "player storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "devshop-tycoon",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/get_game_state", gameHandler.State)
	mux.HandleFunc("/api/get_definitions", gameHandler.Definitions)
	mux.HandleFunc("/api/do_contract", gameHandler.DoContract)
	mux.HandleFunc("/api/buy_item", gameHandler.BuyItem)
	mux.HandleFunc("/api/reset_game", gameHandler.Reset)
	mux.HandleFunc("/api/stats", gameHandler.Stats)

	mux.Handle("/api/config", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}))

	mux.Handle("/", templ.Handler(page.IndexPage()))

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return handler, playerRepo.Close, nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DEVSHOP_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
