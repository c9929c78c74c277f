package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/db"
)

func MigrateCmd(s *session) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:         "migrate",
		Short:       "Bring the database schema up to date",
		Annotations: map[string]string{skipApp: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(s.cfg.DBDriver, s.cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			if down {
				err = db.MigrateDown(database.DB, s.cfg.DBDriver)
			} else {
				err = db.RunMigrations(database.DB, s.cfg.DBDriver)
			}
			if err != nil {
				return err
			}

			version, err := db.Version(database.DB, s.cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration")
	return cmd
}
