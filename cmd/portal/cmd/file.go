package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/model"
)

func FileCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Manage files",
	}

	cmd.AddCommand(fileAddCmd(s))
	cmd.AddCommand(fileDeleteCmd(s))
	cmd.AddCommand(fileListCmd(s))
	return cmd
}

func fileAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add FOLDER_ID PATH...",
		Short: "Copy documents into a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID(args[0])
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args[1:] {
				file, err := s.app.FileService.Upload(folderID, path)
				if err != nil {
					slog.Warn("failed to add file", "path", path, "error", err)
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), fileLine(file))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be added", failed, len(args)-1)
			}
			return nil
		},
	}
}

func fileDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a file and its stored payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := s.app.FileService.Delete(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("file %d not found", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func fileListCmd(s *session) *cobra.Command {
	var folder, panel string
	var count, recursive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files of a folder or a panel, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := optionalID(folder)
			if err != nil {
				return err
			}
			p, err := optionalPanel(panel)
			if err != nil {
				return err
			}

			if count {
				if folderID == nil {
					return fmt.Errorf("--count needs --folder")
				}
				n, err := s.app.FileService.Count(*folderID, recursive)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}

			var files []*model.File
			switch {
			case folderID != nil:
				files, err = s.app.FileService.InFolder(*folderID)
			case p != nil:
				files, err = s.app.FileService.ByPanel(*p)
			default:
				return fmt.Errorf("either --folder or --panel is required")
			}
			if err != nil {
				return err
			}

			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), fileLine(file))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder id")
	cmd.Flags().StringVar(&panel, "panel", "", "panel")
	cmd.Flags().BoolVar(&count, "count", false, "print the number of files instead")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "with --count, include subfolders")
	return cmd
}
