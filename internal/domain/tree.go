package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Sentinel errors for tree operations
var (
	ErrNodeNotFound = errors.New("node not found in tree")
	ErrIllegalChild = errors.New("illegal parent/child kind pair")
	ErrDuplicateKey = errors.New("duplicate node key")
	ErrNotAttached  = errors.New("node is not attached to a parent")
)

// Node is one element of the course tree: a tagged variant over the four
// entity kinds. Exactly one of the payload pointers is set, matching Kind.
// The payload is owned by the store; the tree only writes its structural
// fields (parent foreign key, SortOrder).
type Node struct {
	Key         string // stable client-generated key, unique across the tree
	Kind        Kind
	Children    []*Node
	HasChildren bool
	SortOrder   int
	Expanded    bool

	Course   *Course
	Topic    *Topic
	SubTopic *SubTopic
	Lesson   *Lesson
}

// NewCourseNode wraps a course entity in a tree node.
func NewCourseNode(c *Course) *Node {
	return &Node{Key: uuid.NewString(), Kind: KindCourse, Course: c, Expanded: true}
}

// NewTopicNode wraps a topic entity in a tree node.
func NewTopicNode(t *Topic) *Node {
	return &Node{Key: uuid.NewString(), Kind: KindTopic, Topic: t, SortOrder: t.SortOrder}
}

// NewSubTopicNode wraps a subtopic entity in a tree node.
func NewSubTopicNode(st *SubTopic) *Node {
	return &Node{Key: uuid.NewString(), Kind: KindSubTopic, SubTopic: st, SortOrder: st.SortOrder}
}

// NewLessonNode wraps a lesson entity in a tree node.
func NewLessonNode(l *Lesson) *Node {
	return &Node{Key: uuid.NewString(), Kind: KindLesson, Lesson: l, SortOrder: l.SortOrder}
}

// ID returns the remote-store identifier of the wrapped entity (0 = unsaved).
func (n *Node) ID() int64 {
	switch n.Kind {
	case KindCourse:
		return n.Course.ID
	case KindTopic:
		return n.Topic.ID
	case KindSubTopic:
		return n.SubTopic.ID
	case KindLesson:
		return n.Lesson.ID
	default:
		return 0
	}
}

// Title returns the display title of the wrapped entity.
func (n *Node) Title() string {
	switch n.Kind {
	case KindCourse:
		return n.Course.Title
	case KindTopic:
		return n.Topic.Title
	case KindSubTopic:
		return n.SubTopic.Title
	case KindLesson:
		return n.Lesson.Title
	default:
		return ""
	}
}

// setOrder writes the sibling index through to both the node and the
// structural SortOrder field of its payload.
func (n *Node) setOrder(i int) {
	n.SortOrder = i
	switch n.Kind {
	case KindTopic:
		n.Topic.SortOrder = i
	case KindSubTopic:
		n.SubTopic.SortOrder = i
	case KindLesson:
		n.Lesson.SortOrder = i
	}
}

// Flatten returns the nodes visible under n for list rendering: n itself,
// then, if n is expanded, its children in order, recursively.
func (n *Node) Flatten() []*Node {
	var result []*Node
	n.flatten(&result)
	return result
}

func (n *Node) flatten(result *[]*Node) {
	*result = append(*result, n)
	if n.Expanded {
		for _, child := range n.Children {
			child.flatten(result)
		}
	}
}

// walk visits n and its subtree depth-first in child order. The walk stops
// early when fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}

// Tree is the in-memory course hierarchy. Besides the node graph it keeps
// an arena: a flat key→node map plus a separate child-key→parent map, so
// nodes carry no parent back-references. Attach and Detach are the only
// structural mutators; every other component goes through them.
type Tree struct {
	root   *Node
	byKey  map[string]*Node
	parent map[string]*Node
}

// Build constructs a tree from a nested course payload. Children at every
// level are sorted by their stored SortOrder (stable, ties keep payload
// order) and then renumbered to contiguous indexes.
func Build(content *CourseContent) *Tree {
	course := content.Course
	root := NewCourseNode(&course)

	for i := range content.Topics {
		root.Children = append(root.Children, buildTopicNode(&content.Topics[i]))
	}
	sortChildren(root)

	t := &Tree{
		root:   root,
		byKey:  make(map[string]*Node),
		parent: make(map[string]*Node),
	}
	t.register(nil, root)
	return t
}

// BuildTopicChildren constructs the child nodes for a lazily loaded topic
// fragment, ready to be grafted under the topic's node.
func BuildTopicChildren(tc *TopicContent) []*Node {
	node := buildTopicNode(tc)
	return node.Children
}

func buildTopicNode(tc *TopicContent) *Node {
	topic := tc.Topic
	node := NewTopicNode(&topic)

	for i := range tc.SubTopics {
		node.Children = append(node.Children, buildSubTopicNode(&tc.SubTopics[i]))
	}
	for i := range tc.Lessons {
		lesson := tc.Lessons[i]
		node.Children = append(node.Children, NewLessonNode(&lesson))
	}
	sortChildren(node)
	return node
}

func buildSubTopicNode(sc *SubTopicContent) *Node {
	subTopic := sc.SubTopic
	node := NewSubTopicNode(&subTopic)

	for i := range sc.Lessons {
		lesson := sc.Lessons[i]
		node.Children = append(node.Children, NewLessonNode(&lesson))
	}
	sortChildren(node)
	return node
}

// sortChildren orders a freshly built children list by stored SortOrder and
// renumbers it to 0..n-1.
func sortChildren(parent *Node) {
	sort.SliceStable(parent.Children, func(i, j int) bool {
		return parent.Children[i].SortOrder < parent.Children[j].SortOrder
	})
	Resequence(parent)
}

// Root returns the course node.
func (t *Tree) Root() *Node { return t.root }

// Size returns the number of nodes registered in the tree.
func (t *Tree) Size() int { return len(t.byKey) }

// Attach inserts node into parent.Children at index at (clamped to the
// list bounds), renumbers the siblings and registers the node's subtree.
func (t *Tree) Attach(parent, node *Node, at int) error {
	if !parent.Kind.CanContain(node.Kind) {
		return fmt.Errorf("%w: %s under %s", ErrIllegalChild, node.Kind, parent.Kind)
	}
	if _, tracked := t.byKey[parent.Key]; !tracked {
		return fmt.Errorf("parent %q: %w", parent.Key, ErrNodeNotFound)
	}
	if err := t.register(parent, node); err != nil {
		return err
	}

	if at < 0 {
		at = 0
	}
	if at > len(parent.Children) {
		at = len(parent.Children)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[at+1:], parent.Children[at:])
	parent.Children[at] = node

	Resequence(parent)
	return nil
}

// Detach removes node from its parent's children, closing the sort-order
// gap, and returns the old parent. The node's subtree stays registered so
// it can be re-attached elsewhere.
func (t *Tree) Detach(node *Node) (*Node, error) {
	parent, ok := t.parent[node.Key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", node.Key, ErrNotAttached)
	}

	idx := -1
	for i, child := range parent.Children {
		if child == node {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%q not among children of %q: %w", node.Key, parent.Key, ErrNodeNotFound)
	}

	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	delete(t.parent, node.Key)
	Resequence(parent)
	return parent, nil
}

// Remove detaches node and drops its whole subtree from the arena.
// Used when the store has confirmed a deletion.
func (t *Tree) Remove(node *Node) (*Node, error) {
	parent, err := t.Detach(node)
	if err != nil {
		return nil, err
	}
	t.deregister(node)
	return parent, nil
}

// Graft replaces parent's children with a freshly loaded list, dropping any
// previously loaded subtree. Used for lazy expansion.
func (t *Tree) Graft(parent *Node, children []*Node) error {
	if _, tracked := t.byKey[parent.Key]; !tracked {
		return fmt.Errorf("parent %q: %w", parent.Key, ErrNodeNotFound)
	}
	for _, child := range parent.Children {
		delete(t.parent, child.Key)
		t.deregister(child)
	}
	parent.Children = nil

	for _, child := range children {
		if err := t.Attach(parent, child, len(parent.Children)); err != nil {
			return err
		}
	}
	Resequence(parent)
	return nil
}

// register adds node and its subtree to the arena. A key already mapped to
// a different node is a corruption and rejected.
func (t *Tree) register(parent, node *Node) error {
	ok := true
	var dup string
	node.walk(func(n *Node) bool {
		if existing, found := t.byKey[n.Key]; found && existing != n {
			ok, dup = false, n.Key
			return false
		}
		return true
	})
	if !ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, dup)
	}

	node.walk(func(n *Node) bool {
		t.byKey[n.Key] = n
		for _, child := range n.Children {
			t.parent[child.Key] = n
		}
		return true
	})
	if parent != nil {
		t.parent[node.Key] = parent
	}
	return nil
}

func (t *Tree) deregister(node *Node) {
	node.walk(func(n *Node) bool {
		delete(t.byKey, n.Key)
		delete(t.parent, n.Key)
		return true
	})
}
