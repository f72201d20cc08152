package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates the subscriber part is not 9 digits
	ErrInvalidLength = errors.New("phone number must have exactly 9 digits after the country code")

	// ErrInvalidPrefix indicates the number doesn't start with a known Uzbek operator code
	ErrInvalidPrefix = errors.New("phone number must start with a valid Uzbek operator code")

	// ErrInvalidFormat indicates the number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")

	// ErrEmptyPhone indicates the phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")
)

// validPrefixes contains the Uzbek mobile operator codes
var validPrefixes = []string{
	"90", // Beeline
	"91", // Beeline
	"93", // Ucell
	"94", // Ucell
	"95", // Uzmobile
	"97", // Mobiuz
	"98", // Perfectum
	"99", // Uzmobile
	"33", // Humans
	"77", // Mobiuz
	"88", // Mobiuz
}

// phoneRegex matches digits only
var phoneRegex = regexp.MustCompile(`^\d+$`)

// PhoneValidator handles phone number validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates an Uzbek mobile number.
// Accepts "+998901234567", "998 90 123 45 67", or the local "901234567".
// Returns the canonical form "+998XXXXXXXXX" and an error if invalid.
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)

	if !phoneRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	if len(sanitized) != 9 {
		return "", ErrInvalidLength
	}

	if !v.IsValidPrefix(sanitized) {
		return "", ErrInvalidPrefix
	}

	return "+998" + sanitized, nil
}

// Sanitize strips separators and the country code, leaving the 9 subscriber digits
func (v *PhoneValidator) Sanitize(phone string) string {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, "(", "")
	phone = strings.ReplaceAll(phone, ")", "")
	phone = strings.ReplaceAll(phone, "+", "")
	phone = strings.ReplaceAll(phone, ".", "")

	if strings.HasPrefix(phone, "998") && len(phone) == 12 {
		phone = phone[3:]
	}

	return phone
}

// IsValidPrefix checks if the number starts with a known operator code
func (v *PhoneValidator) IsValidPrefix(phone string) bool {
	if len(phone) < 2 {
		return false
	}

	prefix := phone[:2]
	for _, validPrefix := range validPrefixes {
		if prefix == validPrefix {
			return true
		}
	}

	return false
}

// Format renders the number in the standard display format: +998 XX XXX XX XX
func (v *PhoneValidator) Format(phone string) (string, error) {
	canonical, err := v.Validate(phone)
	if err != nil {
		return "", err
	}

	digits := canonical[4:]
	return fmt.Sprintf("+998 %s %s %s %s",
		digits[0:2],
		digits[2:5],
		digits[5:7],
		digits[7:9],
	), nil
}

// IsValid is a convenience method that returns true if the phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}
