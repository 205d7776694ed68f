package session

import (
	"regexp"
	"strings"
)

const (
	msgInvalidName  = "Invalid name (Letters only)"
	msgInvalidPhone = "Phone must be exactly 10 digits"
	msgInvalidEmail = "Invalid email address"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]*$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateIdentity checks the identity fields of a draft and returns a map
// of field name to error message. An empty map means the identity step may
// be left.
func ValidateIdentity(name, phone, email string) ValidationErrors {
	errs := ValidationErrors{}

	if !nameRe.MatchString(name) || len(strings.TrimSpace(name)) < 3 {
		errs["name"] = msgInvalidName
	}
	if !phoneRe.MatchString(phone) {
		errs["phone"] = msgInvalidPhone
	}
	if !emailRe.MatchString(email) {
		errs["email"] = msgInvalidEmail
	}

	return errs
}
