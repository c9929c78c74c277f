package validation

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AllowedExtensions are the document types managed storage accepts
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".doc":  true,
	".xls":  true,
}

// IsAllowedFile reports whether name has an allowed extension, ignoring case
func IsAllowedFile(name string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateDocumentName rejects names with an extension outside AllowedExtensions
func ValidateDocumentName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("file name is required"),
		validation.By(func(any) error {
			if !IsAllowedFile(name) {
				return validation.NewError("validation_file_extension", "invalid file extension: "+filepath.Ext(name))
			}
			return nil
		}),
	)
}
