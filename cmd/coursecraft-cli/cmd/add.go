package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"coursecraft/internal/application/commands"
	"coursecraft/internal/domain"
)

var (
	addParentKind string
	addParentID   int64
	addAt         string
	addDuration   int
)

var addCmd = &cobra.Command{
	Use:   "add <kind> <title>",
	Short: "Add a course, topic, subtopic, or lesson",
	Long: `Add a node to the hierarchy. New nodes are appended at the end of their
parent's children.

Examples:
  coursecraft-cli add course "Go Basics"
  coursecraft-cli add topic "Concurrency"
  coursecraft-cli add subtopic "Channels" --parent-id 3
  coursecraft-cli add lesson "Select" --parent-kind subtopic --parent-id 10 \
      --at 2026-09-07T09:00 --duration 45`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		kindName, title := args[0], args[1]

		if kindName == "course" {
			course := domain.Course{Title: title, Visible: true}
			if err := GetStore().CreateCourse(ctx, &course); err != nil {
				return err
			}
			notifier.Success(fmt.Sprintf("Created course %q (id %d)", course.Title, course.ID))
			return nil
		}

		tree, err := courseTree(ctx)
		if err != nil {
			return err
		}

		var result *commands.AddResult
		switch domain.ParseKind(kindName) {
		case domain.KindTopic:
			result, err = commands.NewAddTopicCommand(GetStore(), tree, title).Execute(ctx)

		case domain.KindSubTopic:
			parent, ferr := findNode(tree, "topic", addParentID)
			if ferr != nil {
				return ferr
			}
			result, err = commands.NewAddSubTopicCommand(GetStore(), tree, parent.Key, title).Execute(ctx)

		case domain.KindLesson:
			parent, ferr := findNode(tree, addParentKind, addParentID)
			if ferr != nil {
				return ferr
			}
			addLesson := commands.NewAddLessonCommand(GetStore(), tree, parent.Key, title)
			addLesson.DurationMin = addDuration
			if addAt != "" {
				at, perr := parseWhen(addAt)
				if perr != nil {
					return perr
				}
				addLesson.ScheduledAt = at
			}
			result, err = addLesson.Execute(ctx)

		default:
			return fmt.Errorf("unknown kind %q (want course, topic, subtopic, or lesson)", kindName)
		}

		if err != nil {
			return err
		}
		notifier.Success(result.Message)
		return nil
	},
}

// parseWhen accepts a date with optional time.
func parseWhen(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if at, err := time.Parse(layout, value); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want 2026-09-07, 2026-09-07T09:00, or RFC 3339)", value)
}

func init() {
	addCmd.Flags().StringVar(&addParentKind, "parent-kind", "topic", "parent kind for lessons: topic or subtopic")
	addCmd.Flags().Int64Var(&addParentID, "parent-id", 0, "parent entity id for subtopics and lessons")
	addCmd.Flags().StringVar(&addAt, "at", "", "schedule the lesson at this time")
	addCmd.Flags().IntVar(&addDuration, "duration", 0, "lesson duration in minutes")
	rootCmd.AddCommand(addCmd)
}
