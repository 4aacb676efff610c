package domain

// MoveReason is the verdict of move validation. MoveAllowed means the pair
// passed every rule; the other values name why the move was rejected.
type MoveReason int

const (
	MoveAllowed MoveReason = iota
	MoveSourceImmovable
	MoveKindMismatch
	MoveSameNode
	MoveSameParent
	MoveCycle
)

func (r MoveReason) String() string {
	switch r {
	case MoveAllowed:
		return "allowed"
	case MoveSourceImmovable:
		return "source cannot be moved"
	case MoveKindMismatch:
		return "target kind cannot hold source kind"
	case MoveSameNode:
		return "source and target are the same node"
	case MoveSameParent:
		return "target is already the parent"
	case MoveCycle:
		return "target is inside the moved subtree"
	default:
		return "unknown"
	}
}

// AllowedTarget encodes the kind-pair rule table: a Lesson may target a
// SubTopic or Topic, a SubTopic a Topic, a Topic a Course. Courses never
// move.
func AllowedTarget(source, target Kind) MoveReason {
	switch source {
	case KindLesson:
		if target == KindSubTopic || target == KindTopic {
			return MoveAllowed
		}
	case KindSubTopic:
		if target == KindTopic {
			return MoveAllowed
		}
	case KindTopic:
		if target == KindCourse {
			return MoveAllowed
		}
	case KindCourse:
		return MoveSourceImmovable
	}
	return MoveKindMismatch
}

// CheckMove validates moving source under target within this tree: the kind
// table first, then identity, true no-op (target already the parent) and
// cycle rules. Cycles matter only for Topic and SubTopic sources, Lessons
// have no descendants.
func (t *Tree) CheckMove(source, target *Node) MoveReason {
	if source == target {
		return MoveSameNode
	}
	if reason := AllowedTarget(source.Kind, target.Kind); reason != MoveAllowed {
		return reason
	}
	if parent, ok := t.ParentOf(source); ok && parent == target {
		return MoveSameParent
	}
	if t.isDescendant(source, target) {
		return MoveCycle
	}
	return MoveAllowed
}

// isDescendant reports whether candidate sits inside root's subtree,
// walking the parent map upward from candidate.
func (t *Tree) isDescendant(root, candidate *Node) bool {
	for current, ok := t.ParentOf(candidate); ok; current, ok = t.ParentOf(current) {
		if current == root {
			return true
		}
	}
	return false
}
