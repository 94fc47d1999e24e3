// Package server serves the website over HTTP, rendering every page on
// request.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/armourconstruction/site/internal/config"
	"github.com/armourconstruction/site/internal/contact"
	"github.com/armourconstruction/site/internal/render"
	"github.com/armourconstruction/site/internal/site"
)

// Assets are the parts of the server that can be swapped at runtime when
// layouts or content change on disk.
type Assets struct {
	Site     *site.Site
	Renderer *render.Renderer
}

// Server routes requests to the page handlers.
type Server struct {
	cfg       config.ServerConfig
	assets    atomic.Pointer[Assets]
	submitter contact.Submitter
	static    fs.FS
	logger    *zap.Logger
}

// New returns a Server. static holds the files served under /static/.
func New(cfg config.ServerConfig, assets *Assets, submitter contact.Submitter, static fs.FS, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		submitter: submitter,
		static:    static,
		logger:    logger,
	}
	s.assets.Store(assets)
	return s
}

// Reload replaces the site and templates used for subsequent requests.
// Requests already in flight finish with the previous set.
func (s *Server) Reload(a *Assets) {
	s.assets.Store(a)
	s.logger.Info("site reloaded")
}

func (s *Server) current() *Assets {
	return s.assets.Load()
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatic(site.PageHome))
	mux.HandleFunc("GET /about", s.handleStatic(site.PageAbout))
	mux.HandleFunc("GET /services", s.handleStatic(site.PageServices))
	mux.HandleFunc("GET /projects", s.handleProjects)
	mux.HandleFunc("GET /blog", s.handleBlog)
	mux.HandleFunc("GET /blog/{id}", s.handlePost)
	mux.HandleFunc("GET /contact", s.handleContactForm)
	mux.HandleFunc("POST /contact", s.handleContactSubmit)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /", s.handleNotFound)
	if s.static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(s.static)))
	}
	return s.recoverer(s.logRequests(mux))
}

// Run listens on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. In-flight requests
// get up to ShutdownTimeout to complete.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server started", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		<-errCh
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}
