package security

// Password policy for signup. Rules are checked in a fixed order and the
// first failing rule's message is returned, so the UI always shows the same
// message for the same input.

// PolicyError is a password-policy violation with a user-facing message.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

// ValidatePassword checks the password against the signup policy:
// length >= 8, then at least one uppercase letter, one lowercase letter,
// one digit, and one character outside [A-Za-z0-9]. Returns nil when all
// rules pass.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return &PolicyError{Message: "Password must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper {
		return &PolicyError{Message: "Password must contain at least one uppercase letter"}
	}
	if !hasLower {
		return &PolicyError{Message: "Password must contain at least one lowercase letter"}
	}
	if !hasDigit {
		return &PolicyError{Message: "Password must contain at least one number"}
	}
	if !hasSpecial {
		return &PolicyError{Message: "Password must contain at least one special character"}
	}
	return nil
}
