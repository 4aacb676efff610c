package domain

import "fmt"

// FindByKey resolves a node by its stable key.
func (t *Tree) FindByKey(key string) (*Node, error) {
	node, ok := t.byKey[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ErrNodeNotFound)
	}
	return node, nil
}

// ParentOf returns the parent of node. The second return is false for the
// root and for nodes not attached to this tree.
func (t *Tree) ParentOf(node *Node) (*Node, bool) {
	parent, ok := t.parent[node.Key]
	return parent, ok
}

// FindByEntityID resolves a node by entity kind and store id. Collaborator
// events often carry only the entity id, not a key. Depth-first in sibling
// order, so the result is deterministic.
func (t *Tree) FindByEntityID(kind Kind, id int64) (*Node, error) {
	var found *Node
	t.root.walk(func(n *Node) bool {
		if n.Kind == kind && n.ID() == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%s %d: %w", kind, id, ErrNodeNotFound)
	}
	return found, nil
}

// Walk visits every node in the tree depth-first in sibling order.
func (t *Tree) Walk(fn func(*Node) bool) {
	t.root.walk(fn)
}

// Lessons returns every lesson node in the tree in traversal order.
func (t *Tree) Lessons() []*Node {
	var lessons []*Node
	t.root.walk(func(n *Node) bool {
		if n.Kind == KindLesson {
			lessons = append(lessons, n)
		}
		return true
	})
	return lessons
}
