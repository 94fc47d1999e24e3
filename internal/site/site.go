// Package site assembles the data for every page of the website from the
// content catalogue, the listing filter and the metadata generator.
package site

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/armourconstruction/site/internal/contact"
	"github.com/armourconstruction/site/internal/content"
	"github.com/armourconstruction/site/internal/listing"
	"github.com/armourconstruction/site/internal/model"
	"github.com/armourconstruction/site/internal/seo"
)

// Page template names.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageServices = "services"
	PageProjects = "projects"
	PageBlog     = "blog"
	PagePost     = "post"
	PageContact  = "contact"
	PageNotFound = "notfound"
)

const relatedPosts = 3

var pageMeta = map[string]seo.Options{
	PageHome: {},
	PageAbout: {
		Title:       "About Us",
		Description: "Learn about Armour Construction's 15+ years of experience, our expert team, and our commitment to quality construction services.",
		Keywords:    []string{"construction company history", "construction team", "construction experience", "building expertise"},
		OGImage:     "/images/team/team-hero.jpg",
	},
	PageServices: {
		Title:       "Our Services",
		Description: "Comprehensive construction services including commercial, residential, industrial construction, renovations, and project management.",
		Keywords:    []string{"commercial construction", "residential construction", "industrial construction", "renovation services", "construction management"},
		OGImage:     "/images/services/services-hero.jpg",
	},
	PageProjects: {
		Title:       "Our Projects",
		Description: "Explore our portfolio of successful construction projects including commercial buildings, residential developments, and industrial facilities.",
		Keywords:    []string{"construction portfolio", "building projects", "completed constructions", "construction case studies"},
		OGImage:     "/images/projects/projects-hero.jpg",
	},
	PageBlog: {
		Title:       "Construction Blog",
		Description: "Stay updated with the latest construction industry trends, news, and insights from Armour Construction experts.",
		Keywords:    []string{"construction blog", "construction news", "building trends", "construction insights", "construction tips"},
		OGImage:     "/images/blog/blog-hero.jpg",
	},
	PageContact: {
		Title:       "Contact Us",
		Description: "Get in touch with Armour Construction for a free consultation and quote on your commercial, residential or industrial project.",
		Keywords:    []string{"contact construction company", "construction quote", "free consultation"},
	},
}

// Options configure a Site.
type Options struct {
	SiteTitle string
	BaseURL   string
}

// Site builds page data. It holds no per-request state and is safe for
// concurrent use.
type Site struct {
	catalog *content.Catalog
	meta    *seo.Generator
	opts    Options
	now     func() time.Time
}

// New returns a Site serving the given catalogue.
func New(catalog *content.Catalog, opts Options) *Site {
	if opts.SiteTitle == "" {
		opts.SiteTitle = seo.DefaultSiteName
	}
	return &Site{
		catalog: catalog,
		meta:    seo.NewGenerator(opts.BaseURL),
		opts:    opts,
		now:     time.Now,
	}
}

// Catalog returns the content the site is built from.
func (s *Site) Catalog() *content.Catalog {
	return s.catalog
}

func (s *Site) page(name, path string, meta seo.Metadata) model.PageData {
	return model.PageData{
		SiteTitle: s.opts.SiteTitle,
		BaseURL:   s.meta.SiteURL,
		Path:      path,
		Page:      name,
		Year:      s.now().Year(),
		Meta:      meta,
		Nav:       Navigation(path),
		Site:      s.catalog.Site(),
	}
}

func (s *Site) static(name, path string) model.PageData {
	return s.page(name, path, s.meta.Generate(pageMeta[name]))
}

// Home is the landing page.
func (s *Site) Home() model.PageData { return s.static(PageHome, "/") }

// About is the company page.
func (s *Site) About() model.PageData { return s.static(PageAbout, "/about") }

// Services lists the service offering and delivery process.
func (s *Site) Services() model.PageData { return s.static(PageServices, "/services") }

// Projects is the portfolio narrowed by the visitor's filter state.
func (s *Site) Projects(state listing.State) model.PageData {
	d := s.static(PageProjects, "/projects")
	all := s.catalog.Projects()
	d.Projects = listing.Apply(all, state)
	d.Filter = state
	d.Categories = listing.Options(all, state.Category)
	return d
}

// Blog lists the posts narrowed by the visitor's filter state.
func (s *Site) Blog(state listing.State) model.PageData {
	d := s.static(PageBlog, "/blog")
	all := s.catalog.Posts()
	d.Posts = listing.Apply(all, state)
	d.Filter = state
	d.Categories = listing.Options(all, state.Category)
	return d
}

// Post is a single article. For an unknown id it returns the not found page
// together with an error wrapping content.ErrNotFound.
func (s *Site) Post(id int) (model.PageData, error) {
	post, err := s.catalog.Post(id)
	if err != nil {
		return s.NotFound(fmt.Sprintf("/blog/%d", id)), err
	}
	d := s.page(PagePost, post.Permalink(), s.meta.Generate(seo.Options{
		Title:       post.Title,
		Description: post.Excerpt,
		Keywords:    post.Keywords,
		OGImage:     post.Image,
	}))
	d.Post = &post
	d.Related = s.catalog.RelatedPosts(id, relatedPosts)
	return d, nil
}

// PostByParam resolves a post from the raw route segment. Anything other than
// the canonical decimal form of a positive id, such as "01" or "+1", is not
// found.
func (s *Site) PostByParam(raw string) (model.PageData, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || strconv.Itoa(id) != raw {
		return s.NotFound("/blog/" + raw), fmt.Errorf("blog post %q: %w", raw, content.ErrNotFound)
	}
	return s.Post(id)
}

// NotFound is the page shown for a path that does not resolve. Paths under
// /blog/ get the blog post fallback.
func (s *Site) NotFound(path string) model.PageData {
	meta := s.meta.PageNotFound()
	if strings.HasPrefix(path, "/blog/") {
		meta = s.meta.NotFound()
	}
	return s.page(PageNotFound, path, meta)
}

// Contact is the contact page showing form in its current state.
func (s *Site) Contact(form model.ContactForm) model.PageData {
	d := s.static(PageContact, "/contact")
	if form.Status == "" {
		form.Status = model.FormIdle
	}
	form.ProjectTypes = contact.ProjectTypes
	d.Form = form
	return d
}

// Route is a page reachable without query parameters, as exported by a
// static build.
type Route struct {
	Path string
	Page string
	Data model.PageData
}

// Routes lists every static route: the fixed pages followed by one entry per
// blog post.
func (s *Site) Routes() []Route {
	routes := []Route{
		{Path: "/", Page: PageHome, Data: s.Home()},
		{Path: "/about", Page: PageAbout, Data: s.About()},
		{Path: "/services", Page: PageServices, Data: s.Services()},
		{Path: "/projects", Page: PageProjects, Data: s.Projects(listing.NewState())},
		{Path: "/blog", Page: PageBlog, Data: s.Blog(listing.NewState())},
		{Path: "/contact", Page: PageContact, Data: s.Contact(model.ContactForm{})},
	}
	for _, p := range s.catalog.Posts() {
		d, err := s.Post(p.ID)
		if err != nil {
			continue
		}
		routes = append(routes, Route{Path: p.Permalink(), Page: PagePost, Data: d})
	}
	return routes
}
