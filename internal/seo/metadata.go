// Package seo builds the per-page metadata record (title, description,
// keywords, social sharing cards) from site defaults and page overrides.
package seo

import "strings"

const (
	DefaultSiteName    = "Armour Construction"
	DefaultSiteURL     = "https://armourconstruction.com"
	DefaultTitle       = "Armour Construction - Building Excellence"
	DefaultDescription = "Professional construction services for commercial and residential projects. Quality craftsmanship and reliable project management."
	DefaultOGImage     = "/images/og-image.jpg"

	ogImageWidth  = 1200
	ogImageHeight = 630
)

// DefaultKeywords are included on every page ahead of page keywords.
var DefaultKeywords = []string{
	"construction company",
	"building contractors",
	"commercial construction",
	"residential construction",
	"construction services",
	"building services",
	"renovation",
	"remodeling",
	"construction management",
}

// Options are the page-level overrides. Zero fields fall back to defaults.
type Options struct {
	Title       string
	Description string
	Keywords    []string
	OGImage     string
}

type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Images      []Image
	Locale      string
	Type        string
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
}

type GoogleBot struct {
	Index           bool
	Follow          bool
	MaxVideoPreview int
	MaxImagePreview string
	MaxSnippet      int
}

type Robots struct {
	Index     bool
	Follow    bool
	GoogleBot GoogleBot
}

// Metadata is the complete record rendered into a page head.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	OpenGraph   OpenGraph
	Twitter     Twitter
	Robots      Robots
}

// KeywordList joins the keywords for a meta tag.
func (m Metadata) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// Directives renders a robots directive list such as "index, follow".
func (r Robots) Directives() string {
	return directives(r.Index, r.Follow)
}

// Directives renders the googlebot directive list.
func (g GoogleBot) Directives() string {
	return directives(g.Index, g.Follow) +
		", max-video-preview:" + itoa(g.MaxVideoPreview) +
		", max-image-preview:" + g.MaxImagePreview +
		", max-snippet:" + itoa(g.MaxSnippet)
}

// Generator merges page options over a fixed set of site defaults.
type Generator struct {
	SiteName string
	SiteURL  string
}

// NewGenerator returns a Generator for the given public site URL. An empty URL
// keeps the default.
func NewGenerator(siteURL string) *Generator {
	g := &Generator{SiteName: DefaultSiteName, SiteURL: DefaultSiteURL}
	if siteURL != "" {
		g.SiteURL = strings.TrimRight(siteURL, "/")
	}
	return g
}

var defaultGenerator = NewGenerator("")

// Generate builds metadata with the default site settings.
func Generate(opts Options) Metadata {
	return defaultGenerator.Generate(opts)
}

// Generate never fails: every field of the result is populated.
func (g *Generator) Generate(opts Options) Metadata {
	title := DefaultTitle
	if opts.Title != "" {
		title = opts.Title + " | " + g.SiteName
	}
	description := opts.Description
	if description == "" {
		description = DefaultDescription
	}
	image := opts.OGImage
	if image == "" {
		image = DefaultOGImage
	}
	alt := opts.Title
	if alt == "" {
		alt = DefaultTitle
	}

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    union(DefaultKeywords, opts.Keywords),
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         g.SiteURL,
			SiteName:    g.SiteName,
			Images: []Image{{
				URL:    image,
				Width:  ogImageWidth,
				Height: ogImageHeight,
				Alt:    alt,
			}},
			Locale: "en_US",
			Type:   "website",
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Images:      []string{image},
		},
		Robots: Robots{
			Index:  true,
			Follow: true,
			GoogleBot: GoogleBot{
				Index:           true,
				Follow:          true,
				MaxVideoPreview: -1,
				MaxImagePreview: "large",
				MaxSnippet:      -1,
			},
		},
	}
}

// NotFound is the metadata used when a blog post id does not resolve.
func (g *Generator) NotFound() Metadata {
	return g.Generate(Options{
		Title:       "Blog Post Not Found",
		Description: "The requested blog post could not be found.",
	})
}

// PageNotFound is the metadata for paths that match no page.
func (g *Generator) PageNotFound() Metadata {
	return g.Generate(Options{
		Title:       "Page Not Found",
		Description: "The page you are looking for does not exist.",
	})
}

// union concatenates the lists, dropping repeated entries (case-insensitive)
// while keeping first-occurrence order.
func union(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, k := range list {
			key := strings.ToLower(strings.TrimSpace(k))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, k)
		}
	}
	return out
}
