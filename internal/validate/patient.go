package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"clinic-admissions-backend/internal/model"
)

var phoneRe = regexp.MustCompile(`^\d{7,12}$`)

// allowedGenders is the closed set accepted for the gender field,
// compared case-insensitively.
var allowedGenders = []string{"Male", "Female", "Other"}

// rule checks one aspect of a patient draft and returns a single reason
// string, or "" when the draft passes.
type rule func(p *model.Patient) string

// patientRules is evaluated in order; every failing rule contributes
// exactly one reason.
var patientRules = []rule{
	nameRule,
	phoneNumberRule,
	ageRule,
	genderRule,
}

// Patient validates a patient draft and returns all violated rules'
// reasons, in rule order. An empty slice means the draft is valid.
func Patient(p *model.Patient) []string {
	var reasons []string
	for _, r := range patientRules {
		if reason := r(p); reason != "" {
			reasons = append(reasons, reason)
		}
	}
	return reasons
}

func nameRule(p *model.Patient) string {
	// Bounds are in characters, not bytes.
	if n := utf8.RuneCountInString(p.Name); n < 2 || n > 40 {
		return "the name should be between 2 and 40 characters"
	}
	return ""
}

func phoneNumberRule(p *model.Patient) string {
	if !phoneRe.MatchString(p.PhoneNumber) {
		return "the phone number must consist of 7 to 12 digits"
	}
	return ""
}

func ageRule(p *model.Patient) string {
	if p.Age < 1 || p.Age > 150 {
		return "the age must be between 1 and 150"
	}
	return ""
}

func genderRule(p *model.Patient) string {
	for _, g := range allowedGenders {
		if strings.EqualFold(p.Gender, g) {
			return ""
		}
	}
	return fmt.Sprintf("the gender can either be %s", strings.Join(allowedGenders, ", "))
}
