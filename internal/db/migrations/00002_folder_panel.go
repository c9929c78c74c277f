package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/templui/docportal/internal/model"
)

func init() {
	goose.AddMigrationContext(upFolderPanel, nil)
}

// upFolderPanel adds the panel column to folder tables that predate panels.
// Existing folders land in the default panel.
func upFolderPanel(ctx context.Context, tx *sql.Tx) error {
	exists, err := tableExists(ctx, tx, "folders")
	if err != nil || !exists {
		return err
	}

	cols, err := columns(ctx, tx, "folders")
	if err != nil {
		return err
	}
	if cols["panel"] {
		return nil
	}

	slog.Info("adding panel column to folders", "default", model.DefaultPanel)
	err = addColumn(ctx, tx, "folders", fmt.Sprintf("panel TEXT DEFAULT '%s'", model.DefaultPanel))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE folders SET panel = ? WHERE panel IS NULL OR panel = ''`, model.DefaultPanel)
	if err != nil {
		return fmt.Errorf("failed to assign default panel: %w", err)
	}

	return nil
}
