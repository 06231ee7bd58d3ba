package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
)

const (
	minNameLength    = 2
	minSubjectLength = 2
	minMessageLength = 10
	minAddressLength = 10
)

// emailPattern requires a local part, a domain, and a dot-separated TLD.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phonePattern allows an optional leading plus followed by digits only.
var phonePattern = regexp.MustCompile(`^\+?\d{7,}$`)

// FieldError names a single invalid field with a shopper-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects field errors across a form.
type Violations []FieldError

func (v Violations) add(field, message string) Violations {
	return append(v, FieldError{Field: field, Message: message})
}

// ErrOrNil converts the collected violations into a validation error, or nil
// when the form passed.
func (v Violations) ErrOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(v)
}

// Name requires at least two non-space characters.
func Name(value string) *FieldError {
	if len(strings.TrimSpace(value)) < minNameLength {
		return &FieldError{Field: "name", Message: "Name must be at least 2 characters long."}
	}
	return nil
}

// Email requires a local part, domain, and TLD.
func Email(value string) *FieldError {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return &FieldError{Field: "email", Message: "Please enter a valid email address."}
	}
	return nil
}

// Phone is optional; when present it must be an optional leading plus
// followed by at least seven digits, nothing else.
func Phone(value string) *FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if !phonePattern.MatchString(trimmed) {
		return &FieldError{Field: "phone", Message: "Please enter a valid phone number."}
	}
	return nil
}

// Subject requires at least two characters.
func Subject(value string) *FieldError {
	if len(strings.TrimSpace(value)) < minSubjectLength {
		return &FieldError{Field: "subject", Message: "Subject must be at least 2 characters long."}
	}
	return nil
}

// Message requires at least ten characters.
func Message(value string) *FieldError {
	if len(strings.TrimSpace(value)) < minMessageLength {
		return &FieldError{Field: "message", Message: "Message must be at least 10 characters long."}
	}
	return nil
}

// Address requires at least ten characters.
func Address(value string) *FieldError {
	if len(strings.TrimSpace(value)) < minAddressLength {
		return &FieldError{Field: "address", Message: "Please enter a complete delivery address."}
	}
	return nil
}

// Quantity requires a positive whole number.
func Quantity(value int) *FieldError {
	if value <= 0 {
		return &FieldError{Field: "quantity", Message: "Quantity must be a positive whole number."}
	}
	return nil
}

// Amount requires a non-negative monetary value.
func Amount(value decimal.Decimal) *FieldError {
	if value.IsNegative() {
		return &FieldError{Field: "amount", Message: "Amount must not be negative."}
	}
	return nil
}

// Collect appends any non-nil field errors.
func Collect(errs ...*FieldError) Violations {
	var v Violations
	for _, err := range errs {
		if err != nil {
			v = v.add(err.Field, err.Message)
		}
	}
	return v
}
