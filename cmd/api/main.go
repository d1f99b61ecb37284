package main

import (
	"fmt"
	"net/http"
	"time"

	"vocab-annotator-go/internal/api"
	"vocab-annotator-go/internal/app"
	"vocab-annotator-go/internal/config"
	"vocab-annotator-go/internal/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	log.WithField("service", "vocab-annotator-go").Info("starting service")

	if err := cfg.Validate(); err != nil {
		// requests still run; missing capabilities surface per request
		log.WithError(err).Warn("incomplete configuration")
	}

	runner, err := app.BuildRunner(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build pipeline")
	}

	srv := api.NewServer(runner, api.Options{
		LLMConfigured: cfg.MockLLM || cfg.LLMAPIKey != "",
		DatasetPath:   cfg.DatasetPath,
		DemoLimit:     cfg.DemoLimit,
	}, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
