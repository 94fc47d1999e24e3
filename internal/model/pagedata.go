package model

import (
	"strings"

	"github.com/armourconstruction/site/internal/contact"
	"github.com/armourconstruction/site/internal/listing"
	"github.com/armourconstruction/site/internal/seo"
)

// PageData is everything a page template receives.
type PageData struct {
	SiteTitle string
	BaseURL   string
	Path      string
	Page      string // page template name, e.g. "blog"
	Year      int

	Meta seo.Metadata
	Nav  []NavLink
	Site SiteData

	// Blog post page.
	Post    *BlogPost
	Related []BlogPost

	// Listing pages.
	Posts      []BlogPost
	Projects   []Project
	Filter     listing.State
	Categories []listing.Option

	Form ContactForm
}

// InBlog reports whether the page lives under /blog/.
func (d PageData) InBlog() bool {
	return strings.HasPrefix(d.Path, "/blog/")
}

// FormStatus is the state of the contact form after a request.
type FormStatus string

const (
	FormIdle    FormStatus = "idle"
	FormSuccess FormStatus = "success"
	FormInvalid FormStatus = "invalid"
	FormError   FormStatus = "error"
)

const (
	FormSuccessMessage = "Thank you! We'll get back to you soon."
	FormErrorMessage   = "Something went wrong. Please try again."
)

// ContactForm carries the form values and outcome back into the contact page.
type ContactForm struct {
	Status       FormStatus
	Values       contact.Inquiry
	Errors       map[string]string
	Receipt      contact.Receipt
	ProjectTypes []contact.ProjectType
}

// Message is the banner text for the current status, if any.
func (f ContactForm) Message() string {
	switch f.Status {
	case FormSuccess:
		return FormSuccessMessage
	case FormError:
		return FormErrorMessage
	default:
		return ""
	}
}

// Error returns the validation message for field.
func (f ContactForm) Error(field string) string {
	return f.Errors[field]
}
