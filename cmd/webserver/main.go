package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/pmarin/filedex/app"
	webapp "github.com/pmarin/filedex/web/run"
)

func main() {
	configPath := flag.String("config", "filedex.yaml", "Path to configuration file")
	dbPath := flag.String("db", "", "Path to the index database (overrides config)")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	storePath := cfg.Store.Path
	if *dbPath != "" {
		storePath = *dbPath
	}

	store, err := app.Open(storePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	web, err := webapp.NewWebApp(store, cfg)
	if err != nil {
		log.Fatalf("Failed to init web app: %v", err)
	}

	addr := web.GetListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, web.GetRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
