package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"coursecraft/internal/application/commands"
)

var moveCmd = &cobra.Command{
	Use:   "move <source-kind> <source-id> <target-kind> <target-id>",
	Short: "Move a node under a new parent",
	Long: `Move a node under a new parent. The node is appended at the end of the
new parent's children.

Rules:
- Lessons move onto topics or subtopics
- Subtopics move onto topics

Examples:
  coursecraft-cli move lesson 7 topic 2        # lesson directly under topic 2
  coursecraft-cli move lesson 7 subtopic 10    # lesson into subtopic 10
  coursecraft-cli move subtopic 10 topic 2     # subtopic (with lessons) to topic 2`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tree, err := courseTree(ctx)
		if err != nil {
			return err
		}

		sourceID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return err
		}
		targetID, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return err
		}

		source, err := findNode(tree, args[0], sourceID)
		if err != nil {
			return err
		}
		target, err := findNode(tree, args[2], targetID)
		if err != nil {
			return err
		}

		result, err := commands.NewMoveNodeCommand(GetStore(), tree, source.Key, target.Key).Execute(ctx)
		if err != nil {
			return err
		}
		notifier.Success(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
