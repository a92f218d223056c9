package usecase

import (
	"net/mail"
	"strings"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const maxNameLength = 200

func validateLeadInput(kind entity.LeadKind, input CaptureLeadInput) error {
	switch kind {
	case entity.LeadKindRetail, entity.LeadKindDistributor:
	default:
		return &DomainError{Code: "UNKNOWN_LEAD_KIND", Message: "unknown lead type"}
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return &DomainError{Code: "NAME_REQUIRED", Message: "name is required"}
	}
	if len(name) > maxNameLength {
		return &DomainError{Code: "NAME_TOO_LONG", Message: "name must not exceed 200 characters"}
	}

	if !isValidPhoneNumber(input.Phone) {
		return &DomainError{Code: "INVALID_PHONE", Message: "a valid phone number is required"}
	}

	email := strings.TrimSpace(input.Email)
	switch {
	case email == "" && kind == entity.LeadKindDistributor:
		return &DomainError{Code: "EMAIL_REQUIRED", Message: "a valid email is required for distributor applications"}
	case email != "":
		if _, err := mail.ParseAddress(email); err != nil {
			return &DomainError{Code: "INVALID_EMAIL", Message: "email is invalid"}
		}
	}
	return nil
}

// Indian mobiles are 10 digits; +91 / 0 prefixes and separators are allowed.
func isValidPhoneNumber(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 13
}
