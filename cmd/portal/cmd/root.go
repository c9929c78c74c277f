package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/app"
	"github.com/templui/docportal/internal/config"
	"github.com/templui/docportal/internal/logger"
)

// skipApp marks commands that open the database themselves
const skipApp = "skip-app"

// session carries the loaded config and the running app between the root
// command hooks and the subcommands.
type session struct {
	cfg     *config.Config
	app     *app.App
	verbose bool
}

// Execute runs the portal command line and closes the app afterwards,
// whether or not the command failed.
func Execute() error {
	s := &session{}
	defer s.close()

	return newRootCmd(s).Execute()
}

func (s *session) close() {
	if s.app == nil {
		return
	}
	err := s.app.Close()
	if err != nil {
		slog.Error("failed to close app", "error", err)
	}
	s.app = nil
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "portal",
		Short:        "Document portal: panels, folders, files and search",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.cfg = config.Load()
			logger.Init(logger.Options{
				Development: s.cfg.IsDevelopment(),
				Quiet:       !s.verbose,
				Output:      os.Stderr,
				SentryDSN:   s.cfg.SentryDSN,
			})

			if cmd.Annotations[skipApp] != "" {
				return nil
			}

			a, err := app.New(s.cfg)
			if err != nil {
				slog.Error("failed to initialize app", "error", err)
				return err
			}
			s.app = a
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log at info level")

	rootCmd.AddCommand(MigrateCmd(s))
	rootCmd.AddCommand(FolderCmd(s))
	rootCmd.AddCommand(FileCmd(s))
	rootCmd.AddCommand(TreeCmd(s))
	rootCmd.AddCommand(SearchCmd(s))
	rootCmd.AddCommand(ImportCmd(s))
	rootCmd.AddCommand(AdminCmd(s))

	return rootCmd
}
