package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	goose.AddMigrationContext(upAdminPasswordHash, nil)
}

type legacyAdmin struct {
	id       int64
	password string
}

// upAdminPasswordHash moves plaintext admin passwords to bcrypt. The
// plaintext column stays for older readers but stops being consulted once a
// hash exists.
func upAdminPasswordHash(ctx context.Context, tx *sql.Tx) error {
	exists, err := tableExists(ctx, tx, "admins")
	if err != nil || !exists {
		return err
	}

	cols, err := columns(ctx, tx, "admins")
	if err != nil {
		return err
	}
	if !cols["password"] {
		return nil
	}

	if !cols["password_hash"] {
		slog.Info("adding password_hash column to admins")
		err = addColumn(ctx, tx, "admins", "password_hash TEXT")
		if err != nil {
			return err
		}
	}

	admins, err := listUnhashedAdmins(ctx, tx)
	if err != nil {
		return err
	}

	for _, a := range admins {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if hashErr != nil {
			// bcrypt refuses passwords over 72 bytes; those rows stay on the plaintext path
			slog.Warn("failed to hash admin password", "admin_id", a.id, "error", hashErr)
			continue
		}

		_, err = tx.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE id = ?`, string(hash), a.id)
		if err != nil {
			return fmt.Errorf("failed to store hash for admin %d: %w", a.id, err)
		}
	}

	if len(admins) > 0 {
		slog.Info("admin passwords migrated to bcrypt", "count", len(admins))
	}
	return nil
}

func listUnhashedAdmins(ctx context.Context, tx *sql.Tx) ([]legacyAdmin, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, password FROM admins
		WHERE (password_hash IS NULL OR password_hash = '') AND password IS NOT NULL AND password != ''
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []legacyAdmin
	for rows.Next() {
		var a legacyAdmin
		if err := rows.Scan(&a.id, &a.password); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
