package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// MoveNodeResult contains the result of moving a node
type MoveNodeResult struct {
	Node      *domain.Node
	OldParent *domain.Node
	NewParent *domain.Node
	Message   string
}

// MoveNodeCommand re-parents a node under a new parent. Side effects are
// strictly ordered: nothing local changes before the store confirms the
// move; the sort-order call always follows the local mutation.
type MoveNodeCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	SourceKey string
	TargetKey string

	// Optional collaborators; all nil-safe.
	Bus    *application.Bus
	Widget ports.TreeWidget
	Log    logrus.FieldLogger
}

// NewMoveNodeCommand creates a new MoveNodeCommand
func NewMoveNodeCommand(store ports.CourseStore, tree *domain.Tree, sourceKey, targetKey string) *MoveNodeCommand {
	return &MoveNodeCommand{
		store:     store,
		tree:      tree,
		SourceKey: sourceKey,
		TargetKey: targetKey,
	}
}

// Validate checks if the move operation is valid. No store call is made.
func (c *MoveNodeCommand) Validate() error {
	_, _, err := c.resolve()
	return err
}

func (c *MoveNodeCommand) resolve() (source, target *domain.Node, err error) {
	if err := application.ValidateRequired("sourceKey", c.SourceKey); err != nil {
		return nil, nil, err
	}
	if err := application.ValidateRequired("targetKey", c.TargetKey); err != nil {
		return nil, nil, err
	}

	source, err = c.tree.FindByKey(c.SourceKey)
	if err != nil {
		return nil, nil, &application.NotFoundError{Key: c.SourceKey}
	}
	target, err = c.tree.FindByKey(c.TargetKey)
	if err != nil {
		return nil, nil, &application.NotFoundError{Key: c.TargetKey}
	}

	if reason := c.tree.CheckMove(source, target); reason != domain.MoveAllowed {
		return nil, nil, &application.MoveError{
			SourceKey: c.SourceKey,
			TargetKey: c.TargetKey,
			Reason:    reason,
		}
	}
	return source, target, nil
}

// Execute runs the move: validate, persist the move, apply it locally as a
// detach plus end-of-list attach, persist the new sibling position, then
// publish NodeMoved. A failed move call leaves the tree exactly as it was.
// A failed sort-order call is logged and swallowed: the move already took
// effect here and on the server, only the order number may be stale until
// the next full reload.
func (c *MoveNodeCommand) Execute(ctx context.Context) (*MoveNodeResult, error) {
	source, target, err := c.resolve()
	if err != nil {
		return nil, err
	}

	oldParent, ok := c.tree.ParentOf(source)
	if !ok {
		return nil, &application.NotFoundError{Key: c.SourceKey}
	}

	if err := c.persistMove(ctx, source, target); err != nil {
		return nil, &application.PersistenceError{Op: "move", Err: err}
	}

	if _, err := c.tree.Detach(source); err != nil {
		return nil, fmt.Errorf("detaching %s: %w", c.SourceKey, err)
	}
	if err := c.tree.Attach(target, source, len(target.Children)); err != nil {
		return nil, fmt.Errorf("attaching %s: %w", c.SourceKey, err)
	}
	applyParent(source, target)

	if err := c.store.UpdateSortOrder(ctx, source.Kind, source.ID(), source.SortOrder); err != nil {
		c.logger().WithError(err).WithFields(logrus.Fields{
			"kind": source.Kind.String(),
			"id":   source.ID(),
		}).Warn("sort order not persisted; server order stale until next reload")
	}

	if c.Bus != nil {
		c.Bus.Publish(application.NodeMoved{
			Node:      source,
			OldParent: oldParent,
			NewParent: target,
		})
	}
	if c.Widget != nil {
		c.Widget.Refresh()
	}

	return &MoveNodeResult{
		Node:      source,
		OldParent: oldParent,
		NewParent: target,
		Message:   fmt.Sprintf("Moved %s %q under %s %q", source.Kind, source.Title(), target.Kind, target.Title()),
	}, nil
}

// persistMove calls the move endpoint matching the source kind. This call
// is the single source of truth for the operation.
func (c *MoveNodeCommand) persistMove(ctx context.Context, source, target *domain.Node) error {
	switch source.Kind {
	case domain.KindLesson:
		subTopicID, topicID := lessonParentIDs(target)
		return c.store.MoveLesson(ctx, source.Lesson.ID, subTopicID, topicID)
	case domain.KindSubTopic:
		return c.store.MoveSubTopic(ctx, source.SubTopic.ID, target.Topic.ID)
	case domain.KindTopic:
		return c.store.MoveTopic(ctx, source.Topic.ID, target.Course.ID)
	default:
		return fmt.Errorf("cannot move %s", source.Kind)
	}
}

// applyParent updates the payload's structural foreign keys to match the
// new parent.
func applyParent(source, target *domain.Node) {
	switch source.Kind {
	case domain.KindLesson:
		source.Lesson.SubTopicID, source.Lesson.TopicID = lessonParentIDs(target)
	case domain.KindSubTopic:
		source.SubTopic.TopicID = target.Topic.ID
	case domain.KindTopic:
		source.Topic.CourseID = target.Course.ID
	}
}

// lessonParentIDs resolves the (subTopicID, topicID) pair for a lesson
// landing on target. Dropping on a subtopic keeps the subtopic's own topic
// as the lesson's topic; dropping on a topic clears the subtopic link.
func lessonParentIDs(target *domain.Node) (subTopicID, topicID int64) {
	if target.Kind == domain.KindSubTopic {
		return target.SubTopic.ID, target.SubTopic.TopicID
	}
	return 0, target.Topic.ID
}

func (c *MoveNodeCommand) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}
