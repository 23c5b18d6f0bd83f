package domain

import (
	"errors"
	"time"
)

// User is the core user entity. SSNEncrypted holds the AES-GCM blob
// ("iv:authTag:ciphertext", base64 components); the raw SSN never leaves
// the signup request boundary. Profile fields are immutable after signup
// except through profile edits.
type User struct {
	ID           string
	Email        string // stored lower-cased, unique
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	DateOfBirth  string // YYYY-MM-DD
	SSNEncrypted string
	SSNLast4     string
	Address      string
	City         string
	State        string
	ZipCode      string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if u.SSNEncrypted == "" {
		return errors.New("encrypted ssn is required")
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// SafeUser is the client-visible view of a user: no password hash, no
// encrypted SSN, only the last four SSN digits for display.
type SafeUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	SSNLast4    string `json:"ssnLast4"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

// Sanitized returns the SafeUser view of u.
func (u *User) Sanitized() *SafeUser {
	return &SafeUser{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth,
		SSNLast4:    u.SSNLast4,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		ZipCode:     u.ZipCode,
	}
}
