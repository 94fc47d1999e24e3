// Package render turns page data into HTML using the site layouts.
//
// A layouts tree has one base.html at its root, shared templates under
// partials/ and one file per page under pages/. Every page is parsed on top
// of its own copy of base.html and the partials, so pages can each define
// "content" without clashing.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/armourconstruction/site/internal/listing"
)

//go:embed layouts static
var embedded embed.FS

const (
	baseLayout  = "base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// ErrUnknownPage is returned by Render for a page that has no template.
var ErrUnknownPage = errors.New("unknown page")

// Renderer holds one parsed template set per page. It is safe for concurrent
// use once built.
type Renderer struct {
	pages map[string]*template.Template
}

// Layouts returns the layouts compiled into the binary.
func Layouts() fs.FS {
	return mustSub("layouts")
}

// Static returns the static assets (stylesheets) compiled into the binary.
func Static() fs.FS {
	return mustSub("static")
}

// Source returns the on-disk layouts directory dir, or the embedded layouts
// when dir is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Layouts()
	}
	return os.DirFS(dir)
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(embedded, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// New parses the layouts tree in fsys.
func New(fsys fs.FS) (*Renderer, error) {
	var partials, pages []string
	hasBase := false
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case name == baseLayout:
			hasBase = true
		case strings.HasPrefix(name, partialsDir+"/"):
			partials = append(partials, name)
		case strings.HasPrefix(name, pagesDir+"/"):
			pages = append(pages, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files: %w", err)
	}
	if !hasBase {
		return nil, fmt.Errorf("%s not found at the root of the layouts directory", baseLayout)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found in %s/", pagesDir)
	}

	root, err := template.New(baseLayout).Funcs(Funcs()).ParseFS(fsys, append([]string{baseLayout}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, file := range pages {
		name := strings.TrimSuffix(path.Base(file), path.Ext(file))
		clone, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layouts for %s: %w", file, err)
		}
		tmpl, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// NewEmbedded parses the layouts compiled into the binary.
func NewEmbedded() (*Renderer, error) {
	return New(Layouts())
}

// Pages lists the page names that can be rendered, sorted.
func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether page has a template.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render executes page with data into w. Output is buffered so nothing is
// written when the template fails.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownPage, page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute page %q: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Funcs returns the helpers available to every template. safeURL is for
// catalogue links such as tel: that html/template would otherwise reject.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lower":       strings.ToLower,
		"join":        func(sep string, elems []string) string { return strings.Join(elems, sep) },
		"markdownURL": markdownURL,
		"filterURL":   filterURL,
		"safeURL":     func(s string) template.URL { return template.URL(s) },
	}
}

func markdownURL(p interface{ Permalink() string }) string {
	return p.Permalink() + ".md"
}

// filterURL links to base with the current search kept and category swapped.
func filterURL(base string, s listing.State, category string) string {
	s.Category = category
	q := s.Values()
	if len(q) == 0 {
		return base
	}
	u := url.URL{Path: base, RawQuery: q.Encode()}
	return u.String()
}
