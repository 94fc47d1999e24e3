package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armourconstruction/site/internal/listing"
	"github.com/armourconstruction/site/internal/model"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	posts := c.Posts()
	require.Len(t, posts, 6)
	for i, p := range posts {
		assert.Equal(t, i+1, p.ID, "posts are kept in id order")
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Excerpt)
		assert.NotEmpty(t, p.Category)
		assert.NotEmpty(t, p.ReadTime)
		assert.NotEmpty(t, p.ContentHTML)
	}

	first := posts[0]
	assert.Equal(t, "Top Construction Trends for 2025", first.Title)
	assert.Equal(t, "Industry Trends", first.Category)
	assert.Equal(t, "John Smith", first.Author)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "August 15, 2025", first.DisplayDate())
	assert.Equal(t, "/blog/1", first.Permalink())
	assert.Contains(t, string(first.ContentHTML), `<h2 id="introduction">Introduction</h2>`)
	assert.Contains(t, first.Keywords, "construction trends")

	site := c.Site()
	assert.Equal(t, "Armour Construction", site.Company.Name)
	assert.Len(t, site.Projects, 6)
	assert.Len(t, site.Services, 6)
	assert.Len(t, site.Testimonials, 3)
	assert.Len(t, site.Process, 4)
	assert.Len(t, site.Social, 4)
	assert.Empty(t, site.Contact[3].Action, "working hours have no link")
}

func TestLoadEmbedded_ComputesMissingReadTime(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	p, err := c.Post(3)
	require.NoError(t, err)
	assert.Equal(t, "1 min read", p.ReadTime)
}

func TestCatalog_Post(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	p, err := c.Post(2)
	require.NoError(t, err)
	assert.Equal(t, "Sustainable Building Practices", p.Title)

	_, err = c.Post(999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	posts := c.Posts()
	posts[0].Title = "changed"
	projects := c.Projects()
	projects[0].Title = "changed"

	assert.Equal(t, "Top Construction Trends for 2025", c.Posts()[0].Title)
	assert.Equal(t, "Modern Office Complex", c.Projects()[0].Title)
}

func TestCatalog_FilterBlogPosts(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	got := listing.Filter(c.Posts(), "trends", listing.AllCategories)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	projects := listing.Filter(c.Projects(), "", "Residential")
	require.Len(t, projects, 2)
	assert.Equal(t, "Luxury Residential Tower", projects[0].Title)
	assert.Equal(t, "Luxury Villas", projects[1].Title)
}

func TestCatalog_RelatedPosts(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":       {Data: []byte("company:\n  name: Test\n")},
		"blog/01-a.md":    {Data: []byte("---\ncategory: Safety\n---\nbody\n")},
		"blog/02-b.md":    {Data: []byte("---\ncategory: Education\n---\nbody\n")},
		"blog/03-c.md":    {Data: []byte("---\ncategory: safety\n---\nbody\n")},
		"blog/04-d.md":    {Data: []byte("---\ncategory: Education\n---\nbody\n")},
		"blog/notes.txt":  {Data: []byte("ignored")},
		"blog/draft/x.md": {Data: []byte("---\nid: 9\n---\nnested\n")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, c.Posts(), 5)

	ids := func(posts []model.BlogPost) []int {
		var out []int
		for _, p := range posts {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []int{3, 2}, ids(c.RelatedPosts(1, 2)))
	assert.Equal(t, []int{4, 1, 3, 9}, ids(c.RelatedPosts(2, 10)))
	assert.Nil(t, c.RelatedPosts(42, 2))
	assert.Nil(t, c.RelatedPosts(1, 0))
}

func TestLoad_TitleFromFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml":                        {Data: []byte("company:\n  name: Test\n")},
		"blog/07-winter_site-readiness.md": {Data: []byte("---\nexcerpt: x\n---\nbody\n")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)

	p, err := c.Post(7)
	require.NoError(t, err)
	assert.Equal(t, "Winter Site Readiness", p.Title)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
		want string
	}{
		{
			name: "missing site file",
			fs:   fstest.MapFS{},
			want: "failed to read site.yaml",
		},
		{
			name: "unknown field",
			fs:   fstest.MapFS{"site.yaml": {Data: []byte("colour: orange\n")}},
			want: "failed to parse site.yaml",
		},
		{
			name: "post without id",
			fs: fstest.MapFS{
				"site.yaml":      {Data: []byte("company:\n  name: Test\n")},
				"blog/untitled.md": {Data: []byte("---\ntitle: x\n---\nbody\n")},
			},
			want: "has no id",
		},
		{
			name: "duplicate id",
			fs: fstest.MapFS{
				"site.yaml":  {Data: []byte("company:\n  name: Test\n")},
				"blog/1-a.md": {Data: []byte("---\ntitle: a\n---\n")},
				"blog/b.md":   {Data: []byte("---\nid: 1\n---\n")},
			},
			want: "duplicate post id 1",
		},
		{
			name: "bad date",
			fs: fstest.MapFS{
				"site.yaml":   {Data: []byte("company:\n  name: Test\n")},
				"blog/1-a.md": {Data: []byte("---\ndate: yesterday\n---\n")},
			},
			want: `could not parse date "yesterday"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_NoBlogDirectory(t *testing.T) {
	c, err := Load(fstest.MapFS{"site.yaml": {Data: []byte("company:\n  name: Test\n")}})
	require.NoError(t, err)
	assert.Empty(t, c.Posts())
}

func TestPostMarkdown(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)
	p, err := c.Post(1)
	require.NoError(t, err)

	md, err := PostMarkdown(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# Top Construction Trends for 2025\n\n_John Smith · August 15, 2025 · Industry Trends_\n\n"))
	assert.Contains(t, md, "## Introduction")
	assert.NotContains(t, md, "<h2")
}

func TestEstimateReadTime(t *testing.T) {
	body := "<p>" + strings.Repeat("word ", 401) + "</p>"
	assert.Equal(t, "3 min read", estimateReadTime([]byte(body)))
	assert.Equal(t, "1 min read", estimateReadTime(nil))
}
