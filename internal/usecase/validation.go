package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	errors = appendEmailErrors(errors, input.Email)

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}
	if len(input.Message) > 5000 {
		errors = append(errors, ValidationError{"message", "must not exceed 5000 characters"})
	}

	return errors
}

func ValidateContactInput(input ContactInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	errors = appendEmailErrors(errors, input.Email)
	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	return errors
}

func ValidateCreateDealInput(input CreateDealInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{"title", "is required"})
	}
	if input.Amount < 0 {
		errors = append(errors, ValidationError{"amount", "must not be negative"})
	}
	if input.ExpectedCloseDate != "" && !isValidDate(input.ExpectedCloseDate) {
		errors = append(errors, ValidationError{"expected_close_date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

func ValidateUpdateDealInput(input UpdateDealInput) []ValidationError {
	var errors []ValidationError

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		errors = append(errors, ValidationError{"title", "must not be empty"})
	}
	if input.Amount != nil && *input.Amount < 0 {
		errors = append(errors, ValidationError{"amount", "must not be negative"})
	}
	if input.Stage != nil && strings.TrimSpace(*input.Stage) == "" {
		errors = append(errors, ValidationError{"stage", "must not be empty"})
	}
	if input.ExpectedCloseDate != nil && *input.ExpectedCloseDate != "" && !isValidDate(*input.ExpectedCloseDate) {
		errors = append(errors, ValidationError{"expected_close_date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

// ValidateSlug is shared by courses, companies and taxonomies.
func ValidateSlug(slug string) []ValidationError {
	if slug == "" {
		return []ValidationError{{"slug", "is required"}}
	}
	if !slugPattern.MatchString(slug) {
		return []ValidationError{{"slug", "must be lowercase words separated by dashes"}}
	}
	return nil
}

func appendEmailErrors(errors []ValidationError, email string) []ValidationError {
	if strings.TrimSpace(email) == "" {
		return append(errors, ValidationError{"email", "is required"})
	}
	if !isValidEmail(email) {
		return append(errors, ValidationError{"email", "is invalid"})
	}
	return errors
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>"; only bare addresses are allowed here.
	return addr.Address == strings.TrimSpace(email)
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

func parseDate(dateStr string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
