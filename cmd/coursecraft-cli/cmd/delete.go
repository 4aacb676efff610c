package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"coursecraft/internal/application/commands"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a node and everything beneath it",
	Long: `Delete a topic, subtopic, or lesson. Children are deleted too.

Examples:
  coursecraft-cli delete lesson 7
  coursecraft-cli delete subtopic 10 --force`,
	Args: cobra.ExactArgs(2),
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

		if !deleteForce && !confirm(fmt.Sprintf("Delete %s %q and everything beneath it?", node.Kind, node.Title())) {
			notifier.Success("Aborted.")
			return nil
		}

		result, err := commands.NewDeleteNodeCommand(GetStore(), tree, node.Key).Execute(ctx)
		if err != nil {
			return err
		}
		notifier.Success(result.Message)
		return nil
	},
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
