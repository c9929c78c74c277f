package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/model"
)

func SearchCmd(s *session) *cobra.Command {
	var name, ext, from, to, minSize, maxSize, folder, panel string

	cmd := &cobra.Command{
		Use:   "search [NAME]",
		Short: "Find files; every given criterion must match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				name = args[0]
			}

			filter := model.SearchFilter{
				Filename:  name,
				Extension: ext,
			}

			var err error
			if filter.DateFrom, err = optionalDate(from, false); err != nil {
				return err
			}
			if filter.DateTo, err = optionalDate(to, true); err != nil {
				return err
			}
			if filter.MinSize, err = optionalSize(minSize); err != nil {
				return err
			}
			if filter.MaxSize, err = optionalSize(maxSize); err != nil {
				return err
			}
			if filter.FolderID, err = optionalID(folder); err != nil {
				return err
			}
			if filter.Panel, err = optionalPanel(panel); err != nil {
				return err
			}

			files, err := s.app.SearchService.Search(filter)
			if err != nil {
				return err
			}

			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), fileLine(file))
			}
			summary := fmt.Sprintf("%d results", len(files))
			if filter.IsEmpty() {
				summary = fmt.Sprintf("%d files, no criteria given", len(files))
			}
			fmt.Fprintln(cmd.ErrOrStderr(), faint.Render(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "extension, e.g. pdf")
	cmd.Flags().StringVar(&from, "from", "", "uploaded on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "uploaded on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&minSize, "min-size", "", "minimum size, e.g. 100KB")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "maximum size, e.g. 10MB")
	cmd.Flags().StringVar(&folder, "folder", "", "folder id, subfolders included")
	cmd.Flags().StringVar(&panel, "panel", "", "panel")
	return cmd
}
