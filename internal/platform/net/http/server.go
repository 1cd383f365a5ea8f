package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"trainerbot/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns a chi mux and the stdlib server in front of it
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer builds a server on addr (":4000"), opts get the mux to mount middleware and routes
func NewServer(addr string, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the Router view of the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler returns the mux, for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains in flight requests for up to grace
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	log := logger.Named("http")

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()
	log.Info().Dur("grace", grace).Msg("http shutting down")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	<-errc
	return nil
}
