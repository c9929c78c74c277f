package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/templui/docportal/internal/digest"
)

func init() {
	goose.AddMigrationContext(upFileMetadata, nil)
}

type legacyFile struct {
	id   int64
	path string
}

// upFileMetadata adds file_size and file_hash and backfills them from the
// payloads that are still on disk. Missing payloads keep 0 and ''.
func upFileMetadata(ctx context.Context, tx *sql.Tx) error {
	exists, err := tableExists(ctx, tx, "files")
	if err != nil || !exists {
		return err
	}

	cols, err := columns(ctx, tx, "files")
	if err != nil {
		return err
	}

	needSize := !cols["file_size"]
	needHash := !cols["file_hash"]
	if !needSize && !needHash {
		return nil
	}

	if needSize {
		slog.Info("adding file_size column to files")
		err = addColumn(ctx, tx, "files", "file_size INTEGER DEFAULT 0")
		if err != nil {
			return err
		}
	}
	if needHash {
		slog.Info("adding file_hash column to files")
		err = addColumn(ctx, tx, "files", "file_hash TEXT DEFAULT ''")
		if err != nil {
			return err
		}
	}

	files, err := listLegacyFiles(ctx, tx)
	if err != nil {
		return err
	}

	var filled int
	for _, f := range files {
		info, err := os.Stat(f.path)
		if err != nil {
			slog.Warn("payload unreachable, leaving metadata empty", "file_id", f.id, "path", f.path, "error", err)
			continue
		}
		if info.IsDir() {
			slog.Warn("payload is a directory, leaving metadata empty", "file_id", f.id, "path", f.path)
			continue
		}

		if needSize {
			_, err = tx.ExecContext(ctx, `UPDATE files SET file_size = ? WHERE id = ?`, info.Size(), f.id)
			if err != nil {
				return fmt.Errorf("failed to backfill size of file %d: %w", f.id, err)
			}
		}

		if needHash {
			sum, hashErr := digest.File(f.path)
			if hashErr != nil {
				slog.Warn("failed to hash payload", "file_id", f.id, "path", f.path, "error", hashErr)
			} else {
				_, err = tx.ExecContext(ctx, `UPDATE files SET file_hash = ? WHERE id = ?`, sum, f.id)
				if err != nil {
					return fmt.Errorf("failed to backfill hash of file %d: %w", f.id, err)
				}
			}
		}
		filled++
	}

	slog.Info("file metadata backfilled", "files", len(files), "reachable", filled)
	return nil
}

func listLegacyFiles(ctx context.Context, tx *sql.Tx) ([]legacyFile, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, filepath FROM files ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []legacyFile
	for rows.Next() {
		var f legacyFile
		if err := rows.Scan(&f.id, &f.path); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
