// Package contact handles quote requests sent through the contact form:
// validation, submission and storage.
package contact

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ErrInvalid matches every validation failure via errors.Is.
var ErrInvalid = errors.New("invalid inquiry")

// Form field names, shared by the HTML form and the validation errors.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldProjectType = "projectType"
	FieldMessage     = "message"
)

const (
	maxNameLen    = 200
	maxPhoneLen   = 50
	maxMessageLen = 5000
)

// ProjectType is the kind of work the visitor is asking about.
type ProjectType string

const (
	ProjectUnspecified ProjectType = ""
	ProjectCommercial  ProjectType = "commercial"
	ProjectResidential ProjectType = "residential"
	ProjectIndustrial  ProjectType = "industrial"
	ProjectRenovation  ProjectType = "renovation"
)

// ProjectTypes lists the selectable project types in form order.
var ProjectTypes = []ProjectType{ProjectCommercial, ProjectResidential, ProjectIndustrial, ProjectRenovation}

// Valid reports whether t is one of the known types or unspecified.
func (t ProjectType) Valid() bool {
	if t == ProjectUnspecified {
		return true
	}
	for _, known := range ProjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the human readable name shown in the select box.
func (t ProjectType) Label() string {
	switch t {
	case ProjectCommercial:
		return "Commercial"
	case ProjectResidential:
		return "Residential"
	case ProjectIndustrial:
		return "Industrial"
	case ProjectRenovation:
		return "Renovation"
	default:
		return "Select a project type"
	}
}

// Inquiry is a single contact form submission.
type Inquiry struct {
	Name        string
	Email       string
	Phone       string
	ProjectType ProjectType
	Message     string
}

// FromValues reads an inquiry from a submitted form.
func FromValues(v url.Values) Inquiry {
	return Inquiry{
		Name:        v.Get(FieldName),
		Email:       v.Get(FieldEmail),
		Phone:       v.Get(FieldPhone),
		ProjectType: ProjectType(v.Get(FieldProjectType)),
		Message:     v.Get(FieldMessage),
	}
}

// Normalize trims surrounding whitespace and lowercases the project type.
func (in Inquiry) Normalize() Inquiry {
	return Inquiry{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		ProjectType: ProjectType(strings.ToLower(strings.TrimSpace(string(in.ProjectType)))),
		Message:     strings.TrimSpace(in.Message),
	}
}

// Validate checks the inquiry as submitted. It returns nil or a
// ValidationErrors listing every failing field in form order.
func (in Inquiry) Validate() error {
	var errs ValidationErrors

	switch {
	case in.Name == "":
		errs = append(errs, FieldError{FieldName, "Please enter your name."})
	case utf8.RuneCountInString(in.Name) > maxNameLen:
		errs = append(errs, FieldError{FieldName, "Name is too long."})
	}

	switch {
	case in.Email == "":
		errs = append(errs, FieldError{FieldEmail, "Please enter your email address."})
	case !validEmail(in.Email):
		errs = append(errs, FieldError{FieldEmail, "Please enter a valid email address."})
	}

	if utf8.RuneCountInString(in.Phone) > maxPhoneLen {
		errs = append(errs, FieldError{FieldPhone, "Phone number is too long."})
	}

	if !in.ProjectType.Valid() {
		errs = append(errs, FieldError{FieldProjectType, "Please choose a project type from the list."})
	}

	switch {
	case in.Message == "":
		errs = append(errs, FieldError{FieldMessage, "Please tell us about your project."})
	case utf8.RuneCountInString(in.Message) > maxMessageLen:
		errs = append(errs, FieldError{FieldMessage, "Message is too long."})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validEmail accepts a bare address only, not "Name <addr>" forms.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// FieldError is a validation message for one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field that failed validation.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid inquiry: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalid) true for any ValidationErrors.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Fields maps field names to their first message, for templates.
func (e ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}
