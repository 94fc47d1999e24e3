package content

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/armourconstruction/site/internal/model"
)

// PostMarkdown renders a post as a standalone Markdown document, converted
// back from its rendered HTML so that it matches what the page shows.
func PostMarkdown(p model.BlogPost) (string, error) {
	body, err := htmltomarkdown.ConvertString(string(p.ContentHTML))
	if err != nil {
		return "", fmt.Errorf("failed to convert post %d to markdown: %w", p.ID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	var byline []string
	if p.Author != "" {
		byline = append(byline, p.Author)
	}
	if d := p.DisplayDate(); d != "" {
		byline = append(byline, d)
	}
	if p.Category != "" {
		byline = append(byline, p.Category)
	}
	if len(byline) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(byline, " · "))
	}

	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}
