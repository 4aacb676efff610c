package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"coursecraft/internal/domain"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List scheduled lessons in chronological order",
	Long: `List every lesson with a scheduled time, earliest first, together with
its duration and the topic it belongs to.

Example:
  coursecraft-cli schedule`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := courseTree(context.Background())
		if err != nil {
			return err
		}

		type row struct {
			lesson *domain.Lesson
			topic  string
		}
		var rows []row
		var currentTopic string
		tree.Walk(func(n *domain.Node) bool {
			switch n.Kind {
			case domain.KindTopic:
				currentTopic = n.Title()
			case domain.KindLesson:
				if !n.Lesson.ScheduledAt.IsZero() {
					rows = append(rows, row{lesson: n.Lesson, topic: currentTopic})
				}
			}
			return true
		})
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].lesson.ScheduledAt.Before(rows[j].lesson.ScheduledAt)
		})

		if len(rows) == 0 {
			notifier.Success("No scheduled lessons.")
			return nil
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("WHEN", "DURATION", "LESSON", "TOPIC")
		for _, r := range rows {
			duration := "-"
			if r.lesson.DurationMin > 0 {
				duration = fmt.Sprintf("%dm", r.lesson.DurationMin)
			}
			tbl.AddRow(r.lesson.ScheduledAt.Format("2006-01-02 15:04"), duration, r.lesson.Title, r.topic)
		}
		fmt.Println(tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
