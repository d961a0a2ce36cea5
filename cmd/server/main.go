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

	"github.com/diarioapp/diario/internal/config"
	"github.com/diarioapp/diario/internal/domain/diary"
	"github.com/diarioapp/diario/internal/sheet"
	"github.com/diarioapp/diario/internal/store"
	"github.com/diarioapp/diario/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	csvClient := sheet.NewCSVClient(sheet.ExportURL(cfg.Sheet.ID))
	reader := sheet.NewCachedReader(csvClient, time.Duration(cfg.Sheet.CacheTTLSeconds)*time.Second)

	factory := func(ctx context.Context, credentialJSON []byte) (store.CellWriter, error) {
		return sheet.NewAPIClient(ctx, cfg.Sheet.ID, credentialJSON)
	}

	svc := diary.NewService(reader, factory, logger)

	sessions := transport.NewSessionStore(transport.Defaults{
		Mode:           diary.Mode(cfg.Session.Mode),
		Points:         cfg.Session.Points,
		CredentialPath: cfg.Sheet.CredentialsFile,
	})

	router := transport.NewRouter(svc, sessions, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "sheet", cfg.Sheet.ID, "mode", cfg.Session.Mode)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
