package cmd

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses",
	Long: `List every course in the store with its id. Pass an id to the other
commands with --course to work on a course other than the first.

Example:
  coursecraft-cli list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		courses, err := GetStore().ListCourses(context.Background())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			notifier.Success("No courses yet. Create one with: coursecraft-cli add course <title>")
			return nil
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("ID", "TITLE", "DESCRIPTION")
		for _, c := range courses {
			tbl.AddRow(c.ID, c.Title, c.Description)
		}
		fmt.Println(tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
