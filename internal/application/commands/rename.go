package commands

import (
	"context"
	"fmt"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// RenameResult contains the result of renaming a node
type RenameResult struct {
	Node    *domain.Node
	Message string
}

// RenameCommand retitles an entity. Structure is untouched.
type RenameCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	Key      string
	NewTitle string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(store ports.CourseStore, tree *domain.Tree, key, newTitle string) *RenameCommand {
	return &RenameCommand{store: store, tree: tree, Key: key, NewTitle: newTitle}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("nodeKey", c.Key); err != nil {
		return err
	}
	if err := application.ValidateRequired("title", c.NewTitle); err != nil {
		return err
	}
	if _, err := c.tree.FindByKey(c.Key); err != nil {
		return &application.NotFoundError{Key: c.Key}
	}
	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	node, _ := c.tree.FindByKey(c.Key)

	if err := c.store.Rename(ctx, node.Kind, node.ID(), c.NewTitle); err != nil {
		return nil, &application.PersistenceError{Op: "rename", Err: err}
	}

	switch node.Kind {
	case domain.KindCourse:
		node.Course.Title = c.NewTitle
	case domain.KindTopic:
		node.Topic.Title = c.NewTitle
	case domain.KindSubTopic:
		node.SubTopic.Title = c.NewTitle
	case domain.KindLesson:
		node.Lesson.Title = c.NewTitle
	}

	return &RenameResult{
		Node:    node,
		Message: fmt.Sprintf("Renamed %s to %q", node.Kind, c.NewTitle),
	}, nil
}
