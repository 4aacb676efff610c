package ports

import (
	"context"

	"coursecraft/internal/domain"
)

// CourseStore is the authoritative remote/local store for course structure.
// Structural mutations go through it before any in-memory state changes:
// the store's answer, not the local tree, is the source of truth.
type CourseStore interface {
	// Read operations
	ListCourses(ctx context.Context) ([]domain.Course, error)
	LoadCourse(ctx context.Context, courseID int64) (*domain.CourseContent, error)
	// LoadTopicContent fetches one topic's subtree for lazy expansion.
	LoadTopicContent(ctx context.Context, topicID int64) (*domain.TopicContent, error)

	// Create operations fill in the assigned ID on success.
	CreateCourse(ctx context.Context, c *domain.Course) error
	CreateTopic(ctx context.Context, t *domain.Topic) error
	CreateSubTopic(ctx context.Context, st *domain.SubTopic) error
	CreateLesson(ctx context.Context, l *domain.Lesson) error

	// Move operations re-parent a single entity. subTopicID 0 places a
	// lesson directly under its topic.
	MoveLesson(ctx context.Context, lessonID, subTopicID, topicID int64) error
	MoveSubTopic(ctx context.Context, subTopicID, topicID int64) error
	MoveTopic(ctx context.Context, topicID, courseID int64) error

	// UpdateSortOrder persists one entity's sibling position.
	UpdateSortOrder(ctx context.Context, kind domain.Kind, id int64, index int) error

	// Rename updates the title, leaving structure untouched.
	Rename(ctx context.Context, kind domain.Kind, id int64, title string) error

	// Delete removes an entity and everything beneath it.
	Delete(ctx context.Context, kind domain.Kind, id int64) error
}
