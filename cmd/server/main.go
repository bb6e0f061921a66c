package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sketchpad/sketchpad/internal/auth"
	"github.com/sketchpad/sketchpad/internal/config"
	"github.com/sketchpad/sketchpad/internal/drawing"
	"github.com/sketchpad/sketchpad/internal/export"
	mw "github.com/sketchpad/sketchpad/internal/middleware"
	"github.com/sketchpad/sketchpad/internal/session"
	"github.com/sketchpad/sketchpad/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	tokens := auth.NewService(cfg.JWTSecret, cfg.SessionTTL)
	authHandler := auth.NewHandler(tokens)

	manager := session.NewManager(st, tokens, cfg.SessionIdle, slog.Default())
	go manager.Run(ctx)
	sessionHandler := session.NewHandler(manager, tokens, st, cfg.ExportWidth, cfg.ExportHeight, cfg.OriginHosts())

	drawingHandler := drawing.NewHandler(drawing.NewService(st))
	exportHandler := export.NewHandler(cfg.ExportWidth, cfg.ExportHeight)

	// Recovery, logging and CORS, with preflights answered for every route
	r := mw.NewRouter(cfg.Origins())

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Stateless export of a posted document
	r.HandleFunc("/export/{format}", exportHandler.ExportDocument).Methods("POST")

	r.HandleFunc("/api/sessions", sessionHandler.Create).Methods("POST")
	r.HandleFunc("/ws/session/{sessionId}", sessionHandler.Connect)

	r.HandleFunc("/api/drawings", drawingHandler.List).Methods("GET")
	r.HandleFunc("/api/drawings/{name}", drawingHandler.Get).Methods("GET")
	r.HandleFunc("/api/drawings/{name}", drawingHandler.Put).Methods("PUT")
	r.HandleFunc("/api/drawings/{name}", drawingHandler.Delete).Methods("DELETE")

	// Session routes need a token issued for that session
	sessions := r.PathPrefix("/api/sessions/{sessionId}").Subrouter()
	sessions.Use(tokens.SessionMiddleware)

	sessions.HandleFunc("", sessionHandler.Close).Methods("DELETE")
	sessions.HandleFunc("/token", authHandler.Refresh).Methods("POST")
	sessions.HandleFunc("/export.{format:png|pdf}", sessionHandler.Export).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		manager.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore picks Postgres when DATABASE_URL is set and the save directory
// otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("drawings stored in postgres")
		return pg, pg.Close, nil
	}

	files, err := store.NewFiles(cfg.SaveDir)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("drawings stored on disk", "dir", cfg.SaveDir)
	return files, func() {}, nil
}
