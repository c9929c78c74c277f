package validation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxPasswordBytes is the bcrypt input limit. bcrypt rejects longer input.
const MaxPasswordBytes = 72

// ValidatePassword checks an administrator password. The operator picks the
// strength; only emptiness and the bcrypt limit are enforced.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.By(func(any) error {
			if len(password) > MaxPasswordBytes {
				return validation.NewError("validation_password_too_long", "password must not exceed 72 bytes")
			}
			return nil
		}),
	)
}
