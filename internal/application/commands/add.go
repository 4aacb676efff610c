package commands

import (
	"context"
	"fmt"
	"time"

	"coursecraft/internal/application"
	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// AddResult contains the result of adding a node
type AddResult struct {
	Node    *domain.Node
	Parent  *domain.Node
	Message string
}

// AddTopicCommand creates a topic at the end of the course's topics.
type AddTopicCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	Title string

	Bus    *application.Bus
	Widget ports.TreeWidget
}

// NewAddTopicCommand creates a new AddTopicCommand
func NewAddTopicCommand(store ports.CourseStore, tree *domain.Tree, title string) *AddTopicCommand {
	return &AddTopicCommand{store: store, tree: tree, Title: title}
}

// Validate checks if the add operation is valid
func (c *AddTopicCommand) Validate() error {
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the add topic command. The node joins the tree only after
// the store has confirmed the creation and assigned an id.
func (c *AddTopicCommand) Execute(ctx context.Context) (*AddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := c.tree.Root()
	topic := domain.Topic{
		CourseID:  root.Course.ID,
		Title:     c.Title,
		SortOrder: len(root.Children),
		Visible:   true,
	}
	if err := c.store.CreateTopic(ctx, &topic); err != nil {
		return nil, &application.PersistenceError{Op: "create topic", Err: err}
	}

	node := domain.NewTopicNode(&topic)
	if err := c.tree.Attach(root, node, len(root.Children)); err != nil {
		return nil, err
	}
	announceAdd(c.Bus, c.Widget, node, root)

	return &AddResult{
		Node:    node,
		Parent:  root,
		Message: fmt.Sprintf("Created topic %q", topic.Title),
	}, nil
}

// AddSubTopicCommand creates a subtopic at the end of a topic's children.
type AddSubTopicCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	ParentKey string
	Title     string

	Bus    *application.Bus
	Widget ports.TreeWidget
}

// NewAddSubTopicCommand creates a new AddSubTopicCommand
func NewAddSubTopicCommand(store ports.CourseStore, tree *domain.Tree, parentKey, title string) *AddSubTopicCommand {
	return &AddSubTopicCommand{store: store, tree: tree, ParentKey: parentKey, Title: title}
}

// Validate checks if the add operation is valid
func (c *AddSubTopicCommand) Validate() error {
	if err := application.ValidateRequired("parentKey", c.ParentKey); err != nil {
		return err
	}
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	parent, err := c.tree.FindByKey(c.ParentKey)
	if err != nil {
		return &application.NotFoundError{Key: c.ParentKey}
	}
	return application.ValidateKind("parentKey", parent, domain.KindTopic)
}

// Execute runs the add subtopic command
func (c *AddSubTopicCommand) Execute(ctx context.Context) (*AddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	parent, _ := c.tree.FindByKey(c.ParentKey)

	subTopic := domain.SubTopic{
		TopicID:   parent.Topic.ID,
		Title:     c.Title,
		SortOrder: len(parent.Children),
	}
	if err := c.store.CreateSubTopic(ctx, &subTopic); err != nil {
		return nil, &application.PersistenceError{Op: "create subtopic", Err: err}
	}

	node := domain.NewSubTopicNode(&subTopic)
	if err := c.tree.Attach(parent, node, len(parent.Children)); err != nil {
		return nil, err
	}
	announceAdd(c.Bus, c.Widget, node, parent)

	return &AddResult{
		Node:    node,
		Parent:  parent,
		Message: fmt.Sprintf("Created subtopic %q", subTopic.Title),
	}, nil
}

// AddLessonCommand creates a lesson at the end of a topic's or subtopic's
// children.
type AddLessonCommand struct {
	store ports.CourseStore
	tree  *domain.Tree

	ParentKey   string
	Title       string
	ScheduledAt time.Time
	DurationMin int

	Bus    *application.Bus
	Widget ports.TreeWidget
}

// NewAddLessonCommand creates a new AddLessonCommand
func NewAddLessonCommand(store ports.CourseStore, tree *domain.Tree, parentKey, title string) *AddLessonCommand {
	return &AddLessonCommand{store: store, tree: tree, ParentKey: parentKey, Title: title}
}

// Validate checks if the add operation is valid
func (c *AddLessonCommand) Validate() error {
	if err := application.ValidateRequired("parentKey", c.ParentKey); err != nil {
		return err
	}
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	parent, err := c.tree.FindByKey(c.ParentKey)
	if err != nil {
		return &application.NotFoundError{Key: c.ParentKey}
	}
	return application.ValidateKind("parentKey", parent, domain.KindTopic, domain.KindSubTopic)
}

// Execute runs the add lesson command
func (c *AddLessonCommand) Execute(ctx context.Context) (*AddResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	parent, _ := c.tree.FindByKey(c.ParentKey)

	subTopicID, topicID := lessonParentIDs(parent)
	lesson := domain.Lesson{
		TopicID:     topicID,
		SubTopicID:  subTopicID,
		Title:       c.Title,
		SortOrder:   len(parent.Children),
		ScheduledAt: c.ScheduledAt,
		DurationMin: c.DurationMin,
		Visible:     true,
	}
	if err := c.store.CreateLesson(ctx, &lesson); err != nil {
		return nil, &application.PersistenceError{Op: "create lesson", Err: err}
	}

	node := domain.NewLessonNode(&lesson)
	if err := c.tree.Attach(parent, node, len(parent.Children)); err != nil {
		return nil, err
	}
	announceAdd(c.Bus, c.Widget, node, parent)

	return &AddResult{
		Node:    node,
		Parent:  parent,
		Message: fmt.Sprintf("Created lesson %q", lesson.Title),
	}, nil
}

func announceAdd(bus *application.Bus, widget ports.TreeWidget, node, parent *domain.Node) {
	if bus != nil {
		bus.Publish(application.NodeAdded{Node: node, Parent: parent})
	}
	if widget != nil {
		widget.AddNodes([]*domain.Node{node}, parent.Key)
	}
}
