package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/service"
)

func ImportCmd(s *session) *cobra.Command {
	var parent, panel string

	cmd := &cobra.Command{
		Use:   "import DIR",
		Short: "Mirror a directory tree into a panel and copy its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, err := optionalID(parent)
			if err != nil {
				return err
			}
			p, err := model.ParsePanel(panel)
			if err != nil && parentID == nil {
				return err
			}

			total, err := s.app.ImportService.CountImportable(args[0])
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			count, err := s.app.ImportService.Import(service.ImportRequest{
				Source:   args[0],
				Panel:    p,
				ParentID: parentID,
				Total:    total,
				OnProgress: func(current, total int) {
					fmt.Fprintf(out, "\r%s", faint.Render(fmt.Sprintf("%d/%d", current, total)))
				},
			})
			if total > 0 {
				fmt.Fprintln(out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d files\n", count, total)
			return err
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "import below this folder id")
	cmd.Flags().StringVar(&panel, "panel", string(model.DefaultPanel), "panel of the imported root folder")
	return cmd
}
