package domain

import "strings"

// Kind identifies the level of a node in the course hierarchy.
// It is fixed at node creation and never changes.
type Kind int

const (
	KindUnknown Kind = iota
	KindCourse
	KindTopic
	KindSubTopic
	KindLesson
)

func (k Kind) String() string {
	switch k {
	case KindCourse:
		return "Course"
	case KindTopic:
		return "Topic"
	case KindSubTopic:
		return "SubTopic"
	case KindLesson:
		return "Lesson"
	default:
		return "Unknown"
	}
}

// ParseKind maps a kind name (case-insensitive) to a Kind.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "course":
		return KindCourse
	case "topic":
		return KindTopic
	case "subtopic", "sub-topic":
		return KindSubTopic
	case "lesson":
		return KindLesson
	default:
		return KindUnknown
	}
}

// CanContain reports whether a node of kind k may hold children of kind child.
// Legal pairs: Course→Topic, Topic→SubTopic, Topic→Lesson, SubTopic→Lesson.
// A Topic may mix SubTopic and Lesson children.
func (k Kind) CanContain(child Kind) bool {
	switch k {
	case KindCourse:
		return child == KindTopic
	case KindTopic:
		return child == KindSubTopic || child == KindLesson
	case KindSubTopic:
		return child == KindLesson
	default:
		return false
	}
}
