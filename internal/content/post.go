package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/armourconstruction/site/internal/model"
)

const wordsPerMinute = 200

var dateFormats = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02", "January 2, 2006"}

type postFrontMatter struct {
	ID       int      `yaml:"id"`
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Category string   `yaml:"category"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	Image    string   `yaml:"image"`
	ReadTime string   `yaml:"readTime"`
	Tags     []string `yaml:"tags"`
	Keywords []string `yaml:"keywords"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// parsePost turns a Markdown file with front matter into a BlogPost.
func parsePost(fsys fs.FS, name string) (model.BlogPost, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("failed to read post %s: %w", name, err)
	}

	var fm postFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("failed to parse front matter of %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return model.BlogPost{}, fmt.Errorf("failed to convert markdown for %s: %w", name, err)
	}

	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
	prefix, rest := splitNumericPrefix(slug)

	id := fm.ID
	if id == 0 {
		id = prefix
	}
	if id <= 0 {
		return model.BlogPost{}, fmt.Errorf("post %s has no id: set one in front matter or prefix the file name with a number", name)
	}

	title := fm.Title
	if title == "" {
		title = titleFromSlug(rest)
	}

	var date time.Time
	if fm.Date != "" {
		date, err = parseDate(fm.Date)
		if err != nil {
			return model.BlogPost{}, fmt.Errorf("post %s: %w", name, err)
		}
	}

	readTime := fm.ReadTime
	if readTime == "" {
		readTime = estimateReadTime(buf.Bytes())
	}

	return model.BlogPost{
		ID:          id,
		Title:       title,
		Excerpt:     fm.Excerpt,
		Category:    fm.Category,
		Author:      fm.Author,
		Date:        date,
		Image:       fm.Image,
		ReadTime:    readTime,
		Tags:        fm.Tags,
		Keywords:    fm.Keywords,
		SourcePath:  name,
		ContentHTML: template.HTML(buf.String()),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q, use YYYY-MM-DD or RFC3339", s)
}

// splitNumericPrefix splits "03-choosing-materials" into 3 and
// "choosing-materials". Without a numeric prefix it returns 0 and slug.
func splitNumericPrefix(slug string) (int, string) {
	head, tail, ok := strings.Cut(slug, "-")
	if !ok {
		return 0, slug
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, slug
	}
	return n, tail
}

func titleFromSlug(slug string) string {
	s := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(s)
}

// estimateReadTime counts the words of the rendered HTML.
func estimateReadTime(rendered []byte) string {
	minutes := int(math.Ceil(float64(countWords(rendered)) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func countWords(rendered []byte) int {
	doc, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return len(strings.Fields(string(rendered)))
	}

	var words int
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			words += len(strings.Fields(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return words
}
