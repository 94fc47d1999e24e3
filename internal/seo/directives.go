package seo

import "strconv"

func directives(index, follow bool) string {
	s := "noindex"
	if index {
		s = "index"
	}
	if follow {
		return s + ", follow"
	}
	return s + ", nofollow"
}

func itoa(n int) string { return strconv.Itoa(n) }
