package helpers

import "strings"

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
