package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidInput is returned before any mutation when arguments are rejected
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// normalizeName trims a display name and puts it in NFC so names typed by
// users and names read from any filesystem compare equal.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
