package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/armourconstruction/site/internal/contact"
	"github.com/armourconstruction/site/internal/content"
	"github.com/armourconstruction/site/internal/listing"
	"github.com/armourconstruction/site/internal/model"
	"github.com/armourconstruction/site/internal/site"
)

const maxFormBytes = 64 << 10

// render writes data with the given page template and status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, a *Assets, status int, data model.PageData) {
	var buf bytes.Buffer
	if err := a.Renderer.Render(&buf, data.Page, data); err != nil {
		s.logger.Error("failed to render page",
			zap.String("page", data.Page),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleStatic(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := s.current()
		var data model.PageData
		switch page {
		case site.PageHome:
			data = a.Site.Home()
		case site.PageAbout:
			data = a.Site.About()
		case site.PageServices:
			data = a.Site.Services()
		}
		s.render(w, r, a, http.StatusOK, data)
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	s.render(w, r, a, http.StatusOK, a.Site.Projects(listing.StateFromValues(r.URL.Query())))
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	s.render(w, r, a, http.StatusOK, a.Site.Blog(listing.StateFromValues(r.URL.Query())))
}

// handlePost serves /blog/{id} and its Markdown alternate /blog/{id}.md.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	id := r.PathValue("id")

	if raw, ok := strings.CutSuffix(id, ".md"); ok {
		s.servePostMarkdown(w, r, a, raw)
		return
	}

	data, err := a.Site.PostByParam(id)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			s.logger.Error("failed to load post", zap.String("id", id), zap.Error(err))
		}
		s.render(w, r, a, http.StatusNotFound, data)
		return
	}
	s.render(w, r, a, http.StatusOK, data)
}

func (s *Server) servePostMarkdown(w http.ResponseWriter, r *http.Request, a *Assets, raw string) {
	data, err := a.Site.PostByParam(raw)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	md, err := content.PostMarkdown(*data.Post)
	if err != nil {
		s.logger.Error("failed to export post", zap.String("id", raw), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	s.render(w, r, a, http.StatusOK, a.Site.Contact(model.ContactForm{Status: model.FormIdle}))
}

// handleContactSubmit validates and stores an inquiry. Success clears the
// form; failures echo the submitted values back.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.Warn("unreadable contact form", zap.Error(err))
		s.render(w, r, a, http.StatusBadRequest, a.Site.Contact(model.ContactForm{Status: model.FormError}))
		return
	}

	in := contact.FromValues(r.PostForm)
	receipt, err := s.submitter.Submit(r.Context(), in)

	var verrs contact.ValidationErrors
	switch {
	case err == nil:
		s.render(w, r, a, http.StatusOK, a.Site.Contact(model.ContactForm{
			Status:  model.FormSuccess,
			Receipt: receipt,
		}))
	case errors.As(err, &verrs):
		s.render(w, r, a, http.StatusUnprocessableEntity, a.Site.Contact(model.ContactForm{
			Status: model.FormInvalid,
			Values: in.Normalize(),
			Errors: verrs.Fields(),
		}))
	default:
		s.logger.Error("failed to submit inquiry", zap.Error(err))
		s.render(w, r, a, http.StatusInternalServerError, a.Site.Contact(model.ContactForm{
			Status: model.FormError,
			Values: in.Normalize(),
		}))
	}
}

// handleNotFound renders the site's not found page for unrouted paths.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	s.render(w, r, a, http.StatusNotFound, a.Site.NotFound(r.URL.Path))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
