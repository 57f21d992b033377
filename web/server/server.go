package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	actx "go.hackfix.me/kangyang/app/context"
	apiv1 "go.hackfix.me/kangyang/web/server/api/v1"
)

// shutdownTimeout is how long in-flight requests are given to complete once
// the server is stopped.
const shutdownTimeout = 5 * time.Second

// Server is a wrapper around http.Server with some custom behavior.
type Server struct {
	*http.Server
	appCtx *actx.Context
}

// New returns a new Server instance.
func New(appCtx *actx.Context, addr string) *Server {
	return &Server{
		appCtx: appCtx,
		Server: &http.Server{
			Handler:           Router(appCtx),
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      time.Minute,
		},
	}
}

// ListenAndServe is a replacement of http.ListenAndServe to ensure we set the
// actual server address when starting the server with port 0. It returns
// after ctx is done and the server is shut down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}

	s.Addr = ln.Addr().String()
	s.appCtx.Logger.Info("started web server", "address", s.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ln)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.appCtx.Logger.Info("stopped web server", "address", s.Addr)

	return nil
}

// Router returns the root HTTP handler.
func Router(appCtx *actx.Context) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(appCtx.Logger))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(middleware.Recoverer)

	r.Mount("/api/v1", apiv1.Router(appCtx))

	return r
}
