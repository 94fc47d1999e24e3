// Package content loads the site's fixed content: company details, services,
// projects, testimonials and blog posts.
//
// The catalogue ships inside the binary. A directory with the same layout can
// be loaded instead while editing content locally:
//
//	site.yaml        company, services, projects, testimonials, ...
//	blog/*.md        one post per file, YAML front matter + Markdown body
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/armourconstruction/site/internal/model"
)

//go:embed data
var embedded embed.FS

const (
	siteFile = "site.yaml"
	blogDir  = "blog"
)

// ErrNotFound is returned when a lookup does not match any content.
var ErrNotFound = errors.New("not found")

type siteDocument struct {
	Company      model.Company          `yaml:"company"`
	Highlights   []model.Feature        `yaml:"highlights"`
	Stats        []model.Stat           `yaml:"stats"`
	WhyUs        []model.Feature        `yaml:"whyUs"`
	Values       []model.Feature        `yaml:"values"`
	Team         []model.TeamMember     `yaml:"team"`
	Services     []model.Service        `yaml:"services"`
	Process      []model.Step           `yaml:"process"`
	Projects     []model.Project        `yaml:"projects"`
	Testimonials []model.Testimonial    `yaml:"testimonials"`
	Contact      []model.ContactChannel `yaml:"contact"`
	Social       []model.SocialLink     `yaml:"social"`
}

// Catalog is an immutable snapshot of the site content. Accessors return
// copies of the collections.
type Catalog struct {
	site  model.SiteData
	posts map[int]int
}

// Embedded returns the catalogue compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns the on-disk directory dir, or the embedded catalogue when dir
// is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Load reads site.yaml and every blog/*.md file of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", siteFile, err)
	}
	var doc siteDocument
	if err := yaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", siteFile, err)
	}

	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		site: model.SiteData{
			Company:      doc.Company,
			Highlights:   doc.Highlights,
			Stats:        doc.Stats,
			WhyUs:        doc.WhyUs,
			Values:       doc.Values,
			Team:         doc.Team,
			Services:     doc.Services,
			Process:      doc.Process,
			Projects:     doc.Projects,
			Posts:        posts,
			Testimonials: doc.Testimonials,
			Contact:      doc.Contact,
			Social:       doc.Social,
		},
		posts: make(map[int]int, len(posts)),
	}
	for i, p := range posts {
		c.posts[p.ID] = i
	}
	return c, nil
}

// LoadEmbedded loads the catalogue compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(Embedded())
}

func loadPosts(fsys fs.FS) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := fs.WalkDir(fsys, blogDir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		post, err := parsePost(fsys, name)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load blog posts: %w", err)
	}

	slices.SortStableFunc(posts, func(a, b model.BlogPost) int { return a.ID - b.ID })
	for i := 1; i < len(posts); i++ {
		if posts[i].ID == posts[i-1].ID {
			return nil, fmt.Errorf("duplicate post id %d in %s and %s", posts[i].ID, posts[i-1].SourcePath, posts[i].SourcePath)
		}
	}
	return posts, nil
}

// Site returns the catalogue as template data.
func (c *Catalog) Site() model.SiteData {
	s := c.site
	s.Projects = c.Projects()
	s.Posts = c.Posts()
	return s
}

// Posts returns the blog posts in id order.
func (c *Catalog) Posts() []model.BlogPost {
	return slices.Clone(c.site.Posts)
}

// Post looks up a post by id.
func (c *Catalog) Post(id int) (model.BlogPost, error) {
	i, ok := c.posts[id]
	if !ok {
		return model.BlogPost{}, fmt.Errorf("blog post %d: %w", id, ErrNotFound)
	}
	return c.site.Posts[i], nil
}

// Projects returns the portfolio in declaration order.
func (c *Catalog) Projects() []model.Project {
	return slices.Clone(c.site.Projects)
}

// RelatedPosts returns up to n posts other than id, those sharing its
// category first.
func (c *Catalog) RelatedPosts(id, n int) []model.BlogPost {
	post, err := c.Post(id)
	if err != nil || n <= 0 {
		return nil
	}

	var same, other []model.BlogPost
	for _, p := range c.site.Posts {
		switch {
		case p.ID == id:
		case strings.EqualFold(p.Category, post.Category):
			same = append(same, p)
		default:
			other = append(other, p)
		}
	}
	related := append(same, other...)
	if len(related) > n {
		related = related[:n]
	}
	return related
}
