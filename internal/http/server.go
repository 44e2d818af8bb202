// Package http arma el servidor del catálogo: métricas, apagado
// ordenado y los timeouts de red del http.Server.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// Server envuelve http.Server con arranque en background y apagado
// ordenado por señal.
type Server struct {
	srv *http.Server
}

// NewServer crea el servidor con timeouts de red razonables para una
// API JSON pequeña.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run levanta el servidor y bloquea hasta recibir SIGINT/SIGTERM o un
// error fatal del listener. Al recibir la señal drena las conexiones
// en curso hasta shutdownTimeout.
func (s *Server) Run(shutdownTimeout time.Duration) error {
	log := logger.L().With(logger.Component("http.server"))

	errc := make(chan error, 1)
	go func() {
		log.Info("http server listening", logger.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case err := <-errc:
		return fmt.Errorf("http: listen: %w", err)
	case sig := <-sigc:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}

	log.Info("http server stopped")
	return nil
}
