// Package listing implements search and category filtering for the blog and
// project listings.
package listing

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllCategories is the category value that disables category restriction.
const AllCategories = "all"

// Query string keys carrying the filter state.
const (
	QueryKey    = "q"
	CategoryKey = "category"
)

// Listable is anything that can appear in a filtered listing.
type Listable interface {
	ListingTitle() string
	ListingExcerpt() string
	ListingCategory() string
}

// State is the search text and category chosen by the visitor.
// It lives for one request and is never shared.
type State struct {
	Query    string
	Category string
}

// NewState returns the state a listing starts with: no query, all categories.
func NewState() State {
	return State{Category: AllCategories}
}

// StateFromValues reads the filter state from a query string. Missing or
// blank values fall back to the defaults.
func StateFromValues(v url.Values) State {
	s := NewState()
	s.Query = strings.TrimSpace(v.Get(QueryKey))
	if c := strings.TrimSpace(v.Get(CategoryKey)); c != "" {
		s.Category = c
	}
	return s
}

// Active reports whether the state restricts the listing at all.
func (s State) Active() bool {
	return s.Query != "" || !strings.EqualFold(s.Category, AllCategories)
}

// Values encodes the state back into query parameters, omitting defaults.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set(QueryKey, s.Query)
	}
	if s.Category != "" && !strings.EqualFold(s.Category, AllCategories) {
		v.Set(CategoryKey, s.Category)
	}
	return v
}

// Filter returns the items whose category matches category and whose title or
// excerpt contains query, both compared case-insensitively. The result is a
// new slice in input order; items is never modified. An unknown category
// yields an empty result.
func Filter[T Listable](items []T, query, category string) []T {
	needle := strings.ToLower(query)
	all := strings.EqualFold(category, AllCategories)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !all && !strings.EqualFold(item.ListingCategory(), category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.ListingTitle()), needle) &&
			!strings.Contains(strings.ToLower(item.ListingExcerpt()), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Apply filters items with a State.
func Apply[T Listable](items []T, s State) []T {
	return Filter(items, s.Query, s.Category)
}

// Option is one entry of a category selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Options lists the distinct categories of items in first-seen order,
// marking the one equal to selected. Categories differing only in case are
// merged.
func Options[T Listable](items []T, selected string) []Option {
	caser := cases.Title(language.English, cases.NoLower)
	seen := make(map[string]bool, len(items))

	var opts []Option
	for _, item := range items {
		value := strings.ToLower(item.ListingCategory())
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		opts = append(opts, Option{
			Value:    value,
			Label:    caser.String(item.ListingCategory()),
			Selected: strings.EqualFold(value, selected),
		})
	}
	return opts
}
