package site

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armourconstruction/site/internal/content"
	"github.com/armourconstruction/site/internal/listing"
	"github.com/armourconstruction/site/internal/model"
	"github.com/armourconstruction/site/internal/seo"
)

func newTestSite(t *testing.T) *Site {
	t.Helper()
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)
	s := New(catalog, Options{})
	s.now = func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func activeLinks(links []model.NavLink) []string {
	var out []string
	for _, l := range links {
		if l.Active {
			out = append(out, l.Name)
		}
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"Home"}},
		{"/about", []string{"About"}},
		{"/blog", []string{"Blog"}},
		{"/blog/3", []string{"Blog"}},
		{"/blogger", nil},
		{"/contact", []string{"Contact"}},
		{"/missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			links := Navigation(tt.path)
			require.Len(t, links, 6)
			assert.Equal(t, tt.want, activeLinks(links))
		})
	}
}

func TestNavigation_DoesNotShareState(t *testing.T) {
	Navigation("/about")
	assert.Empty(t, activeLinks(Navigation("/nowhere")))
}

func TestStaticPages(t *testing.T) {
	s := newTestSite(t)

	home := s.Home()
	assert.Equal(t, PageHome, home.Page)
	assert.Equal(t, seo.DefaultTitle, home.Meta.Title)
	assert.Equal(t, seo.DefaultSiteName, home.SiteTitle)
	assert.Equal(t, seo.DefaultSiteURL, home.BaseURL)
	assert.Equal(t, 2025, home.Year)
	assert.Len(t, home.Site.Testimonials, 3)

	about := s.About()
	assert.Equal(t, "About Us | Armour Construction", about.Meta.Title)
	assert.Contains(t, about.Meta.Keywords, "construction team")
	assert.Contains(t, about.Meta.Keywords, "construction company", "defaults come first")
	assert.Equal(t, "/images/team/team-hero.jpg", about.Meta.OpenGraph.Images[0].URL)

	assert.Equal(t, "Our Services | Armour Construction", s.Services().Meta.Title)
}

func TestProjects_Filter(t *testing.T) {
	s := newTestSite(t)

	all := s.Projects(listing.NewState())
	assert.Len(t, all.Projects, 6)
	assert.Equal(t, "Our Projects | Armour Construction", all.Meta.Title)
	want := []listing.Option{
		{Value: "commercial", Label: "Commercial"},
		{Value: "residential", Label: "Residential"},
		{Value: "industrial", Label: "Industrial"},
	}
	if diff := cmp.Diff(want, all.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	d := s.Projects(listing.State{Query: "warehouse", Category: "Industrial"})
	require.Len(t, d.Projects, 1)
	assert.Equal(t, "Warehouse Complex", d.Projects[0].Title)
	assert.Equal(t, "warehouse", d.Filter.Query)
	assert.True(t, d.Categories[2].Selected)

	assert.Empty(t, s.Projects(listing.State{Category: "marine"}).Projects)
}

func TestBlog_Filter(t *testing.T) {
	s := newTestSite(t)

	d := s.Blog(listing.State{Query: "TRENDS", Category: listing.AllCategories})
	require.Len(t, d.Posts, 1)
	assert.Equal(t, 1, d.Posts[0].ID)
	assert.Len(t, d.Categories, 6)

	d = s.Blog(listing.State{Category: "safety"})
	require.Len(t, d.Posts, 1)
	assert.Equal(t, "Safety Measures in Construction", d.Posts[0].Title)
}

func TestPost(t *testing.T) {
	s := newTestSite(t)

	d, err := s.Post(2)
	require.NoError(t, err)
	assert.Equal(t, PagePost, d.Page)
	assert.Equal(t, "/blog/2", d.Path)
	require.NotNil(t, d.Post)
	assert.Equal(t, "Sustainable Building Practices | Armour Construction", d.Meta.Title)
	assert.Equal(t, d.Post.Excerpt, d.Meta.Description)
	assert.Equal(t, d.Post.Image, d.Meta.Twitter.Images[0])
	assert.Equal(t, []string{"Blog"}, activeLinks(d.Nav))
	assert.Len(t, d.Related, relatedPosts)
	for _, r := range d.Related {
		assert.NotEqual(t, 2, r.ID)
	}
}

func TestPost_NotFound(t *testing.T) {
	s := newTestSite(t)

	for _, raw := range []string{"999", "abc", "0", "-1", "1.5", "01", "+1", " 1"} {
		t.Run(raw, func(t *testing.T) {
			d, err := s.PostByParam(raw)
			assert.True(t, errors.Is(err, content.ErrNotFound))
			assert.Equal(t, PageNotFound, d.Page)
			assert.Equal(t, "Blog Post Not Found | Armour Construction", d.Meta.Title)
			assert.Equal(t, "The requested blog post could not be found.", d.Meta.Description)
			assert.Nil(t, d.Post)
		})
	}
}

func TestNotFound(t *testing.T) {
	s := newTestSite(t)

	d := s.NotFound("/careers")
	assert.Equal(t, PageNotFound, d.Page)
	assert.Equal(t, "Page Not Found | Armour Construction", d.Meta.Title)
	assert.False(t, d.InBlog())

	d = s.NotFound("/blog/abc")
	assert.Equal(t, "Blog Post Not Found | Armour Construction", d.Meta.Title)
	assert.True(t, d.InBlog())
}

func TestContact(t *testing.T) {
	s := newTestSite(t)

	d := s.Contact(model.ContactForm{})
	assert.Equal(t, model.FormIdle, d.Form.Status)
	assert.Len(t, d.Form.ProjectTypes, 4)
	assert.Empty(t, d.Form.Message())
	assert.Equal(t, "Contact Us | Armour Construction", d.Meta.Title)

	d = s.Contact(model.ContactForm{Status: model.FormSuccess})
	assert.Equal(t, "Thank you! We'll get back to you soon.", d.Form.Message())
	d = s.Contact(model.ContactForm{Status: model.FormError})
	assert.Equal(t, "Something went wrong. Please try again.", d.Form.Message())
}

func TestNew_BaseURL(t *testing.T) {
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)
	s := New(catalog, Options{SiteTitle: "Staging", BaseURL: "https://staging.example.com/"})

	d := s.Home()
	assert.Equal(t, "Staging", d.SiteTitle)
	assert.Equal(t, "https://staging.example.com", d.BaseURL)
	assert.Equal(t, "https://staging.example.com", d.Meta.OpenGraph.URL)
}

func TestRoutes(t *testing.T) {
	s := newTestSite(t)

	routes := s.Routes()
	require.Len(t, routes, 12)

	var paths []string
	for _, r := range routes {
		paths = append(paths, r.Path)
		assert.Equal(t, r.Page, r.Data.Page, r.Path)
	}
	want := []string{"/", "/about", "/services", "/projects", "/blog", "/contact",
		"/blog/1", "/blog/2", "/blog/3", "/blog/4", "/blog/5", "/blog/6"}
	assert.Equal(t, want, paths)
}
