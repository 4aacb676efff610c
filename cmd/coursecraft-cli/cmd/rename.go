package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"coursecraft/internal/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename <kind> <id> <new-title>",
	Short: "Rename a node",
	Long: `Rename a course, topic, subtopic, or lesson. Structure is unchanged.

Example:
  coursecraft-cli rename topic 3 "Advanced Concurrency"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tree, err := courseTree(ctx)
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		node, err := findNode(tree, args[0], id)
		if err != nil {
			return err
		}

		result, err := commands.NewRenameCommand(GetStore(), tree, node.Key, args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		notifier.Success(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
