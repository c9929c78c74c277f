package model

import (
	"time"
)

type Admin struct {
	ID           int64     `db:"id"`
	Login        string    `db:"email"`         // Column kept as "email" for existing databases
	Password     *string   `db:"password"`      // Legacy plaintext, nil once rotated
	PasswordHash *string   `db:"password_hash"` // bcrypt
	CreatedAt    time.Time `db:"created_at"`
}

func (a *Admin) HasPasswordHash() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

func (a *Admin) HasLegacyPassword() bool {
	return a.Password != nil && *a.Password != ""
}
