package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	authmw "github.com/intriguedcoder/ai-document-generator/internal/auth/middleware"
	authservice "github.com/intriguedcoder/ai-document-generator/internal/auth/service"
	"github.com/intriguedcoder/ai-document-generator/internal/bootstrap"
	"github.com/intriguedcoder/ai-document-generator/internal/export"
	"github.com/intriguedcoder/ai-document-generator/internal/logging"
	"github.com/intriguedcoder/ai-document-generator/internal/metrics"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Base().WithError(err).Fatal("failed to load config")
	}

	logging.Init(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)
	log := logging.Base()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if !cfg.Firebase.AuthDisabled || cfg.Store.Driver == config.StoreFirestore {
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize firebase")
		}
	}

	var (
		verifier authmw.TokenVerifier
		users    authservice.UserLookup
	)
	if cfg.Firebase.AuthDisabled {
		log.Warn("AUTH_DISABLED=true, identifying callers by X-User-Id")
	} else {
		client, err := app.Auth(ctx)
		if err != nil {
			log.WithError(err).Fatal("failed to create firebase auth client")
		}
		verifier, users = client, client
	}

	m := metrics.New()

	st, closeStore, err := bootstrap.OpenStore(ctx, cfg.Store, app, m)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer closeStore()

	writer, err := bootstrap.NewWriter(cfg.LLM, m)
	if err != nil {
		log.WithError(err).Fatal("failed to create generator")
	}

	var archiver service.Archiver
	if cfg.Export.S3Bucket != "" {
		s3a, err := export.NewS3Archiver(ctx, cfg.Export.S3Bucket, cfg.Export.S3Prefix)
		if err != nil {
			log.WithError(err).Fatal("failed to create export archiver")
		}
		archiver = s3a
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   cfg.App.Name,
		Version:       cfg.App.Version,
		Driver:        cfg.Store.Driver,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Store:         st,
		Metrics:       m,
		Writer:        writer,
		Archiver:      archiver,
		Verifier:      verifier,
		Users:         users,
		RatePerMinute: cfg.RateLimit.RequestsPerMinute,
		RateBurst:     cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
