package commands

import (
	"context"
	"fmt"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// DeleteNodeResult contains the result of a delete operation
type DeleteNodeResult struct {
	Parent      *domain.Node
	RemovedKeys []string
	Message     string
}

// DeleteNodeCommand deletes a node and its subtree. The store confirms the
// deletion first; only then is the node detached and dropped locally.
type DeleteNodeCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	Key string

	Bus    *application.Bus
	Widget ports.TreeWidget
}

// NewDeleteNodeCommand creates a new DeleteNodeCommand
func NewDeleteNodeCommand(store ports.CourseStore, tree *domain.Tree, key string) *DeleteNodeCommand {
	return &DeleteNodeCommand{store: store, tree: tree, Key: key}
}

// Validate checks if the delete operation is valid
func (c *DeleteNodeCommand) Validate() error {
	if err := application.ValidateRequired("nodeKey", c.Key); err != nil {
		return err
	}
	node, err := c.tree.FindByKey(c.Key)
	if err != nil {
		return &application.NotFoundError{Key: c.Key}
	}
	if node.Kind == domain.KindCourse {
		return &application.ValidationError{
			Field:   "nodeKey",
			Message: "the course itself cannot be deleted from its own tree",
		}
	}
	return nil
}

// Execute runs the delete command
func (c *DeleteNodeCommand) Execute(ctx context.Context) (*DeleteNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	node, _ := c.tree.FindByKey(c.Key)

	if err := c.store.Delete(ctx, node.Kind, node.ID()); err != nil {
		return nil, &application.PersistenceError{Op: "delete", Err: err}
	}

	removed := subtreeKeys(node)
	parent, err := c.tree.Remove(node)
	if err != nil {
		return nil, fmt.Errorf("removing %s: %w", c.Key, err)
	}

	if c.Bus != nil {
		c.Bus.Publish(application.NodeRemoved{Node: node, Parent: parent})
	}
	if c.Widget != nil {
		c.Widget.RemoveNodes(removed)
	}

	return &DeleteNodeResult{
		Parent:      parent,
		RemovedKeys: removed,
		Message:     fmt.Sprintf("Deleted %s %q", node.Kind, node.Title()),
	}, nil
}

func subtreeKeys(node *domain.Node) []string {
	keys := []string{node.Key}
	for _, child := range node.Children {
		keys = append(keys, subtreeKeys(child)...)
	}
	return keys
}
