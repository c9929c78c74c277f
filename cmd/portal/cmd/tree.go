package cmd

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"github.com/templui/docportal/internal/model"
)

func TreeCmd(s *session) *cobra.Command {
	var panel string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder tree of every panel with file counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := optionalPanel(panel)
			if err != nil {
				return err
			}

			panels := model.Panels()
			if p != nil {
				panels = []model.Panel{*p}
			}

			for _, panel := range panels {
				roots, err := s.app.FolderService.Tree(&panel)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTree(panel, roots))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&panel, "panel", "", "only this panel")
	return cmd
}

func renderTree(panel model.Panel, roots []*model.FolderNode) string {
	tree := gotree.New(panelLabel(panel))
	for _, root := range roots {
		addNode(tree, root)
	}
	return tree.Print()
}

func addNode(parent gotree.Tree, node *model.FolderNode) {
	label := fmt.Sprintf("%s %s", node.Folder.Name, faint.Render(english.Plural(node.FileCount, "file", "")))
	branch := parent.Add(label)
	for _, child := range node.Children {
		addNode(branch, child)
	}
}
