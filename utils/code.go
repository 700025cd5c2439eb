// utils/code.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GenerateVerificationCode returns a uniformly random 6-digit code in the
// range 100000-999999, formatted as a fixed 6-character decimal string.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// MaskEmail partially masks an email address for privacy in logs
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email // Return original if not a valid email
	}

	name := parts[0]
	domain := parts[1]

	if len(name) == 0 {
		return "***@" + domain
	}
	if len(name) <= 2 {
		return name[:1] + "***@" + domain
	}

	return name[:2] + strings.Repeat("*", len(name)-2) + "@" + domain
}
