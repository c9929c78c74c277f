package validation

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxFolderNameLength = 255

var noPathSeparator = regexp.MustCompile(`^[^/\\]+$`)

// ValidateFolderName checks a folder name after trimming surrounding space
func ValidateFolderName(name string) error {
	trimmed := strings.TrimSpace(name)
	return validation.Validate(trimmed,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, MaxFolderNameLength).Error("folder name is too long (max 255 characters)"),
		validation.Match(noPathSeparator).Error("folder name cannot contain path separators"),
	)
}

// ValidateLogin checks an administrator login
func ValidateLogin(login string) error {
	return validation.Validate(strings.TrimSpace(login),
		validation.Required.Error("login is required"),
		validation.RuneLength(1, 254).Error("login is too long (max 254 characters)"),
	)
}
