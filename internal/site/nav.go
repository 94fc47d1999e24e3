package site

import (
	"strings"

	"github.com/armourconstruction/site/internal/model"
)

var navigation = []model.NavLink{
	{Name: "Home", Href: "/"},
	{Name: "About", Href: "/about"},
	{Name: "Services", Href: "/services"},
	{Name: "Projects", Href: "/projects"},
	{Name: "Blog", Href: "/blog"},
	{Name: "Contact", Href: "/contact"},
}

// Navigation returns the menu with the entry for current marked active.
// Nested routes such as /blog/3 activate their section.
func Navigation(current string) []model.NavLink {
	links := make([]model.NavLink, len(navigation))
	for i, link := range navigation {
		link.Active = isActive(link.Href, current)
		links[i] = link
	}
	return links
}

func isActive(href, current string) bool {
	if href == "/" {
		return current == "/"
	}
	return current == href || strings.HasPrefix(current, href+"/")
}
