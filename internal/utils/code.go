package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var errInvalidDigits = errors.New("digit count must be positive")

// GenerateNumericCode returns a decimal string of exactly the given
// length. Each position is drawn independently, so leading zeros are
// valid ("006123" is a legal 6-digit code). Callers must compare codes
// as strings, never as numbers.
func GenerateNumericCode(digits int) (string, error) {
	if digits <= 0 {
		return "", errInvalidDigits
	}
	var builder strings.Builder
	builder.Grow(digits)
	ten := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}
	return builder.String(), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
