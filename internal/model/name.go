package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldName returns the caseless NFC form of a name, used to compare
// filenames regardless of case in any script.
func FoldName(s string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(s))
}
