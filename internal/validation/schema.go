// Package validation checks inbound payloads before they reach persistence.
//
// Every validator is a pure function over an insert-payload struct and
// reports failures as a field-indexed models.FieldErrors list so handlers
// can build actionable 400 responses.
package validation

import (
	"regexp"
	"strings"

	"commune/internal/models"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,32}$`)

const (
	maxNameLength    = 120
	maxTitleLength   = 200
	minPasswordChars = 8
)

// ValidateInsertUser validates a registration payload.
func ValidateInsertUser(in models.InsertUser) models.FieldErrors {
	var errs models.FieldErrors

	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		errs = append(errs, models.FieldError{Field: "username", Message: "username is required"})
	case !usernameRegex.MatchString(username):
		errs = append(errs, models.FieldError{Field: "username", Message: "username must be 3-32 characters of letters, numbers, hyphens, or underscores"})
	}

	if in.Password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "password is required"})
	} else if len(in.Password) < minPasswordChars {
		errs = append(errs, models.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return errs
}

// ValidateInsertCommunity validates a community-creation payload.
func ValidateInsertCommunity(in models.InsertCommunity) models.FieldErrors {
	var errs models.FieldErrors

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs = append(errs, models.FieldError{Field: "name", Message: "name is required"})
	case len(name) > maxNameLength:
		errs = append(errs, models.FieldError{Field: "name", Message: "name must be at most 120 characters"})
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, models.FieldError{Field: "description", Message: "description is required"})
	}

	if strings.TrimSpace(in.Thumbnail) == "" {
		errs = append(errs, models.FieldError{Field: "thumbnail", Message: "thumbnail is required"})
	}

	return errs
}

// ValidateInsertPost validates a post-creation payload.
func ValidateInsertPost(in models.InsertPost) models.FieldErrors {
	var errs models.FieldErrors

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		errs = append(errs, models.FieldError{Field: "title", Message: "title is required"})
	case len(title) > maxTitleLength:
		errs = append(errs, models.FieldError{Field: "title", Message: "title must be at most 200 characters"})
	}

	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, models.FieldError{Field: "content", Message: "content is required"})
	}

	return errs
}
