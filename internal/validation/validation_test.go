package validation

import (
	"errors"
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("alice@example.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Error("malformed email accepted")
	}
	if err := ValidateEmail(""); err == nil {
		t.Error("empty email accepted")
	}
}

func TestValidateEmail_TypoSuggestion(t *testing.T) {
	err := ValidateEmail("alice@gmial.com")
	if err == nil {
		t.Fatal("typo domain accepted")
	}
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("want *Error, got %T", err)
	}
	if ve.Message != "Did you mean alice@gmail.com?" {
		t.Errorf("message = %q", ve.Message)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"5551234567", "+15551234567", "(555) 123-4567", "555.123.4567", "+442071838750"}
	for _, p := range valid {
		if err := ValidatePhone(p); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"123", "555123456", "+1", "not-a-phone", ""}
	for _, p := range invalid {
		if err := ValidatePhone(p); err == nil {
			t.Errorf("ValidatePhone(%q) accepted", p)
		}
	}
}

func TestValidateState(t *testing.T) {
	for _, s := range []string{"CA", "ny", "DC", "PR"} {
		if err := ValidateState(s); err != nil {
			t.Errorf("ValidateState(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"ZZ", "", "California"} {
		if err := ValidateState(s); err == nil {
			t.Errorf("ValidateState(%q) accepted", s)
		}
	}
}

func TestValidateZipAndSSN(t *testing.T) {
	if err := ValidateZip("94105"); err != nil {
		t.Errorf("valid zip rejected: %v", err)
	}
	if err := ValidateZip("9410"); err == nil {
		t.Error("4-digit zip accepted")
	}
	if err := ValidateSSN("123456789"); err != nil {
		t.Errorf("valid ssn rejected: %v", err)
	}
	if err := ValidateSSN("123-45-6789"); err == nil {
		t.Error("ssn with separators accepted")
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	if err := ValidateDateOfBirth("1990-01-01", now); err != nil {
		t.Errorf("adult rejected: %v", err)
	}
	// 18th birthday exactly today is old enough.
	if err := ValidateDateOfBirth("2008-06-15", now); err != nil {
		t.Errorf("exactly 18 rejected: %v", err)
	}
	// 18th birthday tomorrow is not.
	if err := ValidateDateOfBirth("2008-06-16", now); err == nil {
		t.Error("17-year-old accepted")
	}
	if err := ValidateDateOfBirth("2030-01-01", now); err == nil {
		t.Error("future date accepted")
	}
	if err := ValidateDateOfBirth("junk", now); err == nil {
		t.Error("unparseable date accepted")
	}
}

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("firstName", "Alice"); err != nil {
		t.Errorf("non-empty rejected: %v", err)
	}
	if err := ValidateRequired("firstName", "   "); err == nil {
		t.Error("whitespace-only accepted")
	}
}
