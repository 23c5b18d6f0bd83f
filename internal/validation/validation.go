// Package validation holds the signup field validators shared by the auth
// service and any other caller that accepts registration input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Error is a field-level validation failure with a user-facing message.
// Always recoverable by resubmission.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// usStateCodes are the valid US state codes (50 states + DC and territories).
var usStateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true,
	"DC": true, "PR": true, "VI": true, "GU": true, "AS": true, "MP": true,
}

// emailTypoDomains maps common email domain typos to their likely intended
// domain, so signup can suggest a correction instead of accepting mail that
// will bounce.
var emailTypoDomains = map[string]string{
	"gmial.com":   "gmail.com",
	"gmal.com":    "gmail.com",
	"gamil.com":   "gmail.com",
	"gmail.con":   "gmail.com",
	"gmail.co":    "gmail.com",
	"hotmal.com":  "hotmail.com",
	"hotmail.con": "hotmail.com",
	"yahooo.com":  "yahoo.com",
	"yahoo.con":   "yahoo.com",
	"outloo.com":  "outlook.com",
	"outlook.con": "outlook.com",
}

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneCleanRe = regexp.MustCompile(`[\s\-().]`)
	usPhoneRe    = regexp.MustCompile(`^\+?1?\d{10}$`)
	intlPhoneRe  = regexp.MustCompile(`^\+\d{11,14}$`)
	zipRe        = regexp.MustCompile(`^\d{5}$`)
	ssnRe        = regexp.MustCompile(`^\d{9}$`)
)

// NormalizeEmail lower-cases and trims the address. All storage and lookups
// use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address format and rejects known typo domains
// with a "Did you mean ...?" suggestion.
func ValidateEmail(email string) error {
	if email == "" {
		return &Error{Field: "email", Message: "Email is required"}
	}
	if !emailRe.MatchString(email) {
		return &Error{Field: "email", Message: "Invalid email address"}
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if suggestion, ok := emailTypoDomains[domain]; ok {
		return &Error{
			Field:   "email",
			Message: fmt.Sprintf("Did you mean %s?", strings.Replace(email, domain, suggestion, 1)),
		}
	}
	return nil
}

// ValidatePhone accepts US numbers (10 digits, optional +1 prefix) and
// international numbers (+ followed by 11-14 digits). Separators and
// parentheses are ignored.
func ValidatePhone(phone string) error {
	cleaned := phoneCleanRe.ReplaceAllString(phone, "")
	if usPhoneRe.MatchString(cleaned) || intlPhoneRe.MatchString(cleaned) {
		return nil
	}
	return &Error{
		Field:   "phoneNumber",
		Message: "Phone number must be a valid US number (10 digits) or international format (+country code + number)",
	}
}

// ValidateState checks for a valid US state code (case-insensitive).
func ValidateState(state string) error {
	if usStateCodes[strings.ToUpper(state)] {
		return nil
	}
	return &Error{Field: "state", Message: "Invalid US state code"}
}

// ValidateZip requires exactly 5 digits.
func ValidateZip(zip string) error {
	if zipRe.MatchString(zip) {
		return nil
	}
	return &Error{Field: "zipCode", Message: "Zip code must be 5 digits"}
}

// ValidateSSN requires exactly 9 digits, no separators.
func ValidateSSN(ssn string) error {
	if ssnRe.MatchString(ssn) {
		return nil
	}
	return &Error{Field: "ssn", Message: "SSN must be 9 digits"}
}

// ValidateDateOfBirth parses dob as YYYY-MM-DD and requires an age of at
// least 18 years as of now. Future dates are rejected.
func ValidateDateOfBirth(dob string, now time.Time) error {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return &Error{Field: "dateOfBirth", Message: "Invalid date of birth"}
	}
	if birth.After(now) {
		return &Error{Field: "dateOfBirth", Message: "You must be at least 18 years old"}
	}
	age := now.Year() - birth.Year()
	anniversary := birth.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	if age < 18 {
		return &Error{Field: "dateOfBirth", Message: "You must be at least 18 years old"}
	}
	return nil
}

// ValidateRequired rejects empty or whitespace-only values.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return nil
}
