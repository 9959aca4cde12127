package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"debtster_report/internal/handlers"
)

type Server struct {
	httpServer *http.Server
}

// NewServer wires the report routes. Everything except /health sits behind
// the auth middleware when one is given.
func NewServer(port string, h *handlers.Handlers, authMW func(http.Handler) http.Handler) *Server {
	mux := http.NewServeMux()

	guard := func(hf http.HandlerFunc) http.Handler {
		if authMW == nil {
			return hf
		}
		return authMW(hf)
	}

	if h != nil {
		mux.HandleFunc("/health", h.Health)
		mux.Handle("/report/run", guard(h.RunReport))
		mux.Handle("/report/rows", guard(h.ReportRows))
		mux.Handle("/reports", guard(h.ReportRecords))
		mux.Handle("/reports/download", guard(h.Download))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
