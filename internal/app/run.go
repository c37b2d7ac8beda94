package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vk/travelbotgo/internal/ctxlog"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Run starts the HTTP server and blocks until the context is cancelled, a
// termination signal arrives, or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("🚀 Travel chatbot listening.", "address", a.httpServer.Addr, "environment", a.settings.Environment)
		// ListenAndServe returns ErrServerClosed on graceful shutdown;
		// anything else is a real failure.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		a.close()
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("🏁 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.httpServer.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// close releases the upstream client resources.
func (a *App) close() {
	if err := a.groqClient.Close(); err != nil {
		a.logger.Debug("Closing groq client failed.", "error", err)
	}
	if err := a.amadeusClient.Close(); err != nil {
		a.logger.Debug("Closing amadeus client failed.", "error", err)
	}
}
