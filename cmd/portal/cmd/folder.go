package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/model"
)

func FolderCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	cmd.AddCommand(folderCreateCmd(s))
	cmd.AddCommand(folderRenameCmd(s))
	cmd.AddCommand(folderDeleteCmd(s))
	cmd.AddCommand(folderListCmd(s))
	cmd.AddCommand(folderPathCmd(s))
	return cmd
}

func folderCreateCmd(s *session) *cobra.Command {
	var parent, panel string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a root folder in a panel, or a subfolder",
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

			folder, err := s.app.FolderService.Create(args[0], parentID, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), folderLine(folder))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "parent folder id")
	cmd.Flags().StringVar(&panel, "panel", string(model.DefaultPanel), "panel of a root folder")
	return cmd
}

// Rename and delete report ok or failed; the cause goes to the log.
func folderRenameCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = s.app.FolderService.Rename(id, args[1])
			if err != nil {
				slog.Warn("rename failed", "folder_id", id, "error", err)
				return fmt.Errorf("rename failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func folderDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a folder, its subfolders and all their files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = s.app.FolderService.Delete(id)
			if err != nil {
				slog.Warn("delete failed", "folder_id", id, "error", err)
				return fmt.Errorf("delete failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func folderListCmd(s *session) *cobra.Command {
	var parent, panel string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List root folders, or the subfolders of --parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, err := optionalID(parent)
			if err != nil {
				return err
			}
			p, err := optionalPanel(panel)
			if err != nil {
				return err
			}

			var folders []*model.Folder
			if all {
				folders, err = s.app.FolderService.All(p)
			} else {
				folders, err = s.app.FolderService.Subfolders(parentID, p)
			}
			if err != nil {
				return err
			}

			for _, folder := range folders {
				fmt.Fprintln(cmd.OutOrStdout(), folderLine(folder))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "list the children of this folder id")
	cmd.Flags().StringVar(&panel, "panel", "", "limit to one panel")
	cmd.Flags().BoolVar(&all, "all", false, "list every folder")
	return cmd
}

func folderPathCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Print the breadcrumb from the root to a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			path, err := s.app.FolderService.Path(id)
			if err != nil {
				return err
			}
			if len(path) == 0 {
				return fmt.Errorf("folder %d not found", id)
			}

			names := make([]string, len(path))
			for i, folder := range path {
				names[i] = folder.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", panelLabel(path[0].Panel), strings.Join(names, " / "))
			return nil
		},
	}
}
