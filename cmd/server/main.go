package main

import (
	"errors"
	"io/fs"
	"log"
	"net/http"

	"github.com/alvadroide/Devshop-Tycoon/internal/config"
	"github.com/alvadroide/Devshop-Tycoon/internal/serverapp"
)

func main() {
	cfg, err := config.Load("devshop_config.yml")
	if errors.Is(err, fs.ErrNotExist) {
		// Running without a config file is fine, balance can still be
		// tuned through DEVSHOP_* environment variables.
		cfg = config.Defaults()
		cfg.Balance = config.FromEnv()
	} else if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, cleanup, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.Data.Dir,
		StaticDir:     "static",
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
