package validation

import (
	"regexp"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// French numbers: 0X XX XX XX XX with optional +33 prefix, separators tolerated
	phoneRegex      = regexp.MustCompile(`^(?:\+33|0)[1-9](?:[ .-]?\d{2}){4}$`)
	postalCodeRegex = regexp.MustCompile(`^\d{5}$`)
)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if len([]rune(value)) > maxLen {
		v[field] = "too_long"
	}
}

// Email validates syntax only; deliverability is not our problem here.
func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !emailRegex.MatchString(value) {
		v[field] = "invalid_email"
	}
}

func Phone(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !phoneRegex.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_phone"
	}
}

func PostalCode(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !postalCodeRegex.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_postal_code"
	}
}

// OneOf flags values outside a closed enumeration.
func OneOf(field, value string, allowed []string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_choice"
}
