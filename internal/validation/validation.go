// Package validation holds the pure input checks used during registration.
package validation

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	nonDigit     = regexp.MustCompile(`\D`)
	anyLetter    = regexp.MustCompile(`[A-Za-z]`)
	anyDigit     = regexp.MustCompile(`\d`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone accepts 10-digit Indian mobile numbers (first digit 6-9).
// Formatting characters are stripped before the check.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// NormalizePhone strips everything that is not a digit.
func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// ValidatePassword checks minimum strength and returns a user-facing reason
// when the password is rejected.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !anyLetter.MatchString(password) {
		return false, "Password must contain at least one letter"
	}
	if !anyDigit.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, "Password is valid"
}
