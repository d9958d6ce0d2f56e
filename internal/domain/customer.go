package domain

import (
	"regexp"
	"strings"
	"time"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Customer lives independently of orders; orders reference it, never own it.
type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	Country   string    `json:"country,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ValidationError{Field: "firstName", Reason: "required"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ValidationError{Field: "lastName", Reason: "required"}
	}
	if !reEmail.MatchString(strings.TrimSpace(c.Email)) {
		return ValidationError{Field: "email", Reason: "malformed address"}
	}
	return nil
}
