package models

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidCode is returned for codes that are not 1 to 6 digits.
var ErrInvalidCode = errors.New("invalid local government code")

// CanonicalColumn folds a header so that full-width and half-width spellings of the same column compare equal.
func CanonicalColumn(name string) string {
	name = strings.NewReplacer("\r", "", "\n", "").Replace(name)
	return norm.NFKC.String(strings.TrimSpace(name))
}

// NormalizeCode zero-pads a code to CodeLength digits. Full-width digits are accepted.
func NormalizeCode(raw string) (string, error) {
	code := norm.NFKC.String(strings.TrimSpace(raw))
	if code == "" || len(code) > CodeLength {
		return "", ErrInvalidCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", ErrInvalidCode
		}
	}
	return strings.Repeat("0", CodeLength-len(code)) + code, nil
}
