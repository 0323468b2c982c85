// Package main - Entry point for the service pricing API server
package main

import (
	"flag"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"service-pricing/api"
	"service-pricing/core/catalog"
	"service-pricing/internal/config"
	"service-pricing/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	cfgFile := flag.String("config", "", "config file path")
	catalogDir := flag.String("catalog", "", "catalog directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Printf("Error initializing logging: %v\n", err)
		return
	}
	defer logging.Sync()

	dir := cfg.Catalog.Directory
	if *catalogDir != "" {
		dir = *catalogDir
	}
	cat, err := catalog.LoadDir(dir, cfg.Catalog.StrictValidation)
	if err != nil {
		logging.Fatal("failed to load catalog", zap.Error(err))
	}

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	apiServer := api.NewServer(version, cat)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	logging.Info("service pricing server starting",
		zap.String("version", version),
		zap.String("addr", listen))

	if err := http.ListenAndServe(listen, mux); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
