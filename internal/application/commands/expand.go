package commands

import (
	"context"
	"fmt"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// ExpandNodeResult contains the result of a lazy expansion
type ExpandNodeResult struct {
	Node     *domain.Node
	Children []*domain.Node
}

// ExpandNodeCommand lazily loads a topic's subtree from the store and
// grafts it under the topic's node, replacing whatever was loaded before.
type ExpandNodeCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	Key string

	Widget ports.TreeWidget
}

// NewExpandNodeCommand creates a new ExpandNodeCommand
func NewExpandNodeCommand(store ports.CourseStore, tree *domain.Tree, key string) *ExpandNodeCommand {
	return &ExpandNodeCommand{store: store, tree: tree, Key: key}
}

// Validate checks if the expand operation is valid
func (c *ExpandNodeCommand) Validate() error {
	if err := application.ValidateRequired("nodeKey", c.Key); err != nil {
		return err
	}
	node, err := c.tree.FindByKey(c.Key)
	if err != nil {
		return &application.NotFoundError{Key: c.Key}
	}
	return application.ValidateKind("nodeKey", node, domain.KindTopic)
}

// Execute runs the expand command
func (c *ExpandNodeCommand) Execute(ctx context.Context) (*ExpandNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	node, _ := c.tree.FindByKey(c.Key)

	content, err := c.store.LoadTopicContent(ctx, node.Topic.ID)
	if err != nil {
		return nil, &application.PersistenceError{Op: "load topic", Err: err}
	}

	children := domain.BuildTopicChildren(content)
	if err := c.tree.Graft(node, children); err != nil {
		return nil, fmt.Errorf("grafting under %s: %w", c.Key, err)
	}
	node.Expanded = true

	if c.Widget != nil {
		c.Widget.AddNodes(children, node.Key)
	}

	return &ExpandNodeResult{Node: node, Children: children}, nil
}
