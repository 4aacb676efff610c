// Package mcp exposes course authoring over the Model Context Protocol so
// an assistant can inspect and rearrange a course. Every tool loads fresh
// state from the store; nothing is cached between calls.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// RegisterReadTools adds all read-only course tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.CourseStore) {
	s.AddTool(coursesTool(), coursesHandler(store))
	s.AddTool(treeTool(), treeHandler(store))
	s.AddTool(scheduleTool(), scheduleHandler(store))
}

// --- courses ---

func coursesTool() mcp.Tool {
	return mcp.NewTool("courses",
		mcp.WithDescription("List all courses with their ids."),
	)
}

func coursesHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		courses, err := store.ListCourses(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(courses) == 0 {
			return mcp.NewToolResultText("No courses."), nil
		}

		var sb strings.Builder
		for _, c := range courses {
			fmt.Fprintf(&sb, "%d  %s\n", c.ID, c.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display a course's structure as a tree. Each line shows the level (Topic/SubTopic/Lesson) and the entity id used by the write tools."),
		mcp.WithString("course_id",
			mcp.Description("Course id (see the courses tool)"),
			mcp.Required(),
		),
	)
}

func treeHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		renderTree(&sb, tree.Root(), "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.Node, prefix string) {
	fmt.Fprintf(sb, "%s%s %d  %s\n", prefix, node.Kind, node.ID(), node.Title())
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- schedule ---

func scheduleTool() mcp.Tool {
	return mcp.NewTool("schedule",
		mcp.WithDescription("List a course's scheduled lessons in date order."),
		mcp.WithString("course_id",
			mcp.Description("Course id"),
			mcp.Required(),
		),
	)
}

func scheduleHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}

		var scheduled []*domain.Lesson
		for _, node := range tree.Lessons() {
			if !node.Lesson.ScheduledAt.IsZero() {
				scheduled = append(scheduled, node.Lesson)
			}
		}
		sort.SliceStable(scheduled, func(i, j int) bool {
			return scheduled[i].ScheduledAt.Before(scheduled[j].ScheduledAt)
		})

		if len(scheduled) == 0 {
			return mcp.NewToolResultText("No scheduled lessons."), nil
		}
		var sb strings.Builder
		for _, l := range scheduled {
			fmt.Fprintf(&sb, "%s  %s (%d min)\n", l.ScheduledAt.Format("2006-01-02 15:04"), l.Title, l.DurationMin)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func loadTree(ctx context.Context, store ports.CourseStore, courseID string) (*domain.Tree, error) {
	id, err := parseID("course_id", courseID)
	if err != nil {
		return nil, err
	}
	content, err := store.LoadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.Build(content), nil
}

func parseID(field, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", field, value)
	}
	return id, nil
}
