package models

import (
	"strings"
	"time"
)

// Driver doubles as the account model: Username and PasswordHash are the
// login credentials, IsStaff unlocks the admin pages.
type Driver struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	PasswordHash  string    `json:"-"`
	IsStaff       bool      `json:"is_staff"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

const LicenseNumberLength = 8

// ValidLicenseNumber reports whether s is three uppercase letters followed by
// five digits, e.g. "ABC12345".
func ValidLicenseNumber(s string) bool {
	if len(s) != LicenseNumberLength {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	for i := 3; i < LicenseNumberLength; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
