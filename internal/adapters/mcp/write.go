package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"coursecraft/internal/application/commands"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// RegisterWriteTools adds all mutating course tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.CourseStore) {
	s.AddTool(moveTool(), moveHandler(store))
	s.AddTool(addTool(), addHandler(store))
	s.AddTool(renameTool(), renameHandler(store))
	s.AddTool(deleteTool(), deleteHandler(store))
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a lesson onto a topic or subtopic, or a subtopic onto a topic. The moved node is appended at the end of its new parent's children."),
		mcp.WithString("course_id",
			mcp.Description("Course id"),
			mcp.Required(),
		),
		mcp.WithString("source_kind",
			mcp.Description("Kind of the entity to move: lesson or subtopic"),
			mcp.Required(),
		),
		mcp.WithString("source_id",
			mcp.Description("Entity id of the node to move (see the tree tool)"),
			mcp.Required(),
		),
		mcp.WithString("target_kind",
			mcp.Description("Kind of the new parent: topic or subtopic"),
			mcp.Required(),
		),
		mcp.WithString("target_id",
			mcp.Description("Entity id of the new parent"),
			mcp.Required(),
		),
	)
}

func moveHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}

		source, err := findNode(tree, req.GetString("source_kind", ""), req.GetString("source_id", ""))
		if err != nil {
			return toolError(err)
		}
		target, err := findNode(tree, req.GetString("target_kind", ""), req.GetString("target_id", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewMoveNodeCommand(store, tree, source.Key, target.Key)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add ---

func addTool() mcp.Tool {
	return mcp.NewTool("add",
		mcp.WithDescription("Add a topic, subtopic, or lesson. Topics go under the course; subtopics under a topic (parent_id); lessons under a topic or subtopic (parent_kind + parent_id)."),
		mcp.WithString("course_id",
			mcp.Description("Course id"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("What to create: topic, subtopic, or lesson"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Title of the new entity"),
			mcp.Required(),
		),
		mcp.WithString("parent_kind",
			mcp.Description("For lessons: topic or subtopic (defaults to topic)"),
		),
		mcp.WithString("parent_id",
			mcp.Description("Entity id of the parent (required for subtopics and lessons)"),
		),
	)
}

func addHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}
		title := req.GetString("title", "")

		var result *commands.AddResult
		switch domain.ParseKind(req.GetString("kind", "")) {
		case domain.KindTopic:
			result, err = commands.NewAddTopicCommand(store, tree, title).Execute(ctx)

		case domain.KindSubTopic:
			parent, ferr := findNode(tree, "topic", req.GetString("parent_id", ""))
			if ferr != nil {
				return toolError(ferr)
			}
			result, err = commands.NewAddSubTopicCommand(store, tree, parent.Key, title).Execute(ctx)

		case domain.KindLesson:
			parentKind := req.GetString("parent_kind", "topic")
			parent, ferr := findNode(tree, parentKind, req.GetString("parent_id", ""))
			if ferr != nil {
				return toolError(ferr)
			}
			result, err = commands.NewAddLessonCommand(store, tree, parent.Key, title).Execute(ctx)

		default:
			return toolError(fmt.Errorf("kind must be topic, subtopic, or lesson"))
		}

		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a topic, subtopic, or lesson."),
		mcp.WithString("course_id",
			mcp.Description("Course id"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Kind of the entity: topic, subtopic, or lesson"),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Entity id"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func renameHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}
		node, err := findNode(tree, req.GetString("kind", ""), req.GetString("id", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewRenameCommand(store, tree, node.Key, req.GetString("title", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a topic, subtopic, or lesson and everything beneath it."),
		mcp.WithString("course_id",
			mcp.Description("Course id"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Kind of the entity: topic, subtopic, or lesson"),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Entity id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(store ports.CourseStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := loadTree(ctx, store, req.GetString("course_id", ""))
		if err != nil {
			return toolError(err)
		}
		node, err := findNode(tree, req.GetString("kind", ""), req.GetString("id", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewDeleteNodeCommand(store, tree, node.Key)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// findNode resolves a (kind, id) pair from tool arguments to a tree node.
func findNode(tree *domain.Tree, kindName, idValue string) (*domain.Node, error) {
	kind := domain.ParseKind(kindName)
	if kind == domain.KindUnknown {
		return nil, fmt.Errorf("unknown kind %q", kindName)
	}
	id, err := parseID("id", idValue)
	if err != nil {
		return nil, err
	}
	node, err := tree.FindByEntityID(kind, id)
	if err != nil {
		return nil, fmt.Errorf("no %s with id %d", kind, id)
	}
	return node, nil
}
