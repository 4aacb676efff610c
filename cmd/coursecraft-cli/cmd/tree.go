package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coursecraft/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the course tree",
	Long: `Display the complete Course > Topic > SubTopic > Lesson tree with the
entity ids used by the other commands.

Example:
  coursecraft-cli tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := courseTree(context.Background())
		if err != nil {
			return err
		}
		printTree(tree.Root(), 0)
		return nil
	},
}

func printTree(node *domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %d  %s\n", indent, node.Kind, node.ID(), node.Title())
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
