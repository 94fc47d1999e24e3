package model

import (
	"html/template"
	"strconv"
	"time"
)

// BlogPost is a single article from the blog collection.
type BlogPost struct {
	ID          int
	Title       string
	Excerpt     string
	Category    string
	Author      string
	Date        time.Time
	Image       string
	ReadTime    string
	Tags        []string
	Keywords    []string
	SourcePath  string
	ContentHTML template.HTML
}

// Permalink is the route the post is served under.
func (p BlogPost) Permalink() string {
	return "/blog/" + strconv.Itoa(p.ID)
}

// DisplayDate formats the publication date the way the site prints it.
func (p BlogPost) DisplayDate() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format("January 2, 2006")
}

func (p BlogPost) ListingTitle() string    { return p.Title }
func (p BlogPost) ListingExcerpt() string  { return p.Excerpt }
func (p BlogPost) ListingCategory() string { return p.Category }

// Project is a completed job shown in the portfolio.
type Project struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Location    string `yaml:"location"`
	Year        string `yaml:"year"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

func (p Project) ListingTitle() string    { return p.Title }
func (p Project) ListingExcerpt() string  { return p.Description }
func (p Project) ListingCategory() string { return p.Category }

// Service is one of the offerings listed on the services page.
type Service struct {
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// Feature is a short icon/title/description card (home highlights, values, why-us).
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Stat is a headline number such as "200+ Projects Completed".
type Stat struct {
	Number string `yaml:"number"`
	Label  string `yaml:"label"`
}

// Step is a stage of the delivery process.
type Step struct {
	Step        string `yaml:"step"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Testimonial struct {
	ID      int    `yaml:"id"`
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
	Image   string `yaml:"image"`
	Quote   string `yaml:"quote"`
	Rating  int    `yaml:"rating"`
	Project string `yaml:"project"`
}

// Stars returns one entry per rating point so templates can range over it.
func (t Testimonial) Stars() []struct{} {
	if t.Rating <= 0 {
		return nil
	}
	return make([]struct{}, t.Rating)
}

type TeamMember struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Image string `yaml:"image"`
}

// ContactChannel is a block on the contact page (phone, email, office, hours).
// Action is optional; without it the details are rendered as plain text.
type ContactChannel struct {
	Icon    string   `yaml:"icon"`
	Title   string   `yaml:"title"`
	Details []string `yaml:"details"`
	Action  string   `yaml:"action"`
}

type SocialLink struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
	Href string `yaml:"href"`
}

// NavLink is an entry of the static navigation menu.
type NavLink struct {
	Name   string
	Href   string
	Active bool
}

// SiteData holds the whole fixed content catalogue handed to templates.
type SiteData struct {
	Company      Company
	Highlights   []Feature
	Stats        []Stat
	WhyUs        []Feature
	Values       []Feature
	Team         []TeamMember
	Services     []Service
	Process      []Step
	Projects     []Project
	Posts        []BlogPost
	Testimonials []Testimonial
	Contact      []ContactChannel
	Social       []SocialLink
}

// Company carries the brand strings repeated across pages.
type Company struct {
	Name     string `yaml:"name"`
	Tagline  string `yaml:"tagline"`
	Founded  int    `yaml:"founded"`
	Blurb    string `yaml:"blurb"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Address  string `yaml:"address"`
	MapURL   string `yaml:"mapURL"`
	MapEmbed string `yaml:"mapEmbed"`
}
