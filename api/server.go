package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// StartServer listens on port in the background with every mount applied to
// one mux. The returned function shuts the server down.
func StartServer(port int, logger *slog.Logger, mounts ...func(*http.ServeMux)) (shutdown func(context.Context) error) {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	for _, mount := range mounts {
		mount(mux)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server error", "error", err)
		}
	}()

	return server.Shutdown
}
