package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seed creates one course with a topic, a subtopic holding a lesson, and a
// direct lesson, returning the created entities.
func seed(t *testing.T, store *Store) (domain.Course, domain.Topic, domain.SubTopic, domain.Lesson, domain.Lesson) {
	t.Helper()
	ctx := context.Background()

	course := domain.Course{Title: "Go Basics", Visible: true}
	require.NoError(t, store.CreateCourse(ctx, &course))

	topic := domain.Topic{CourseID: course.ID, Title: "Syntax", Visible: true}
	require.NoError(t, store.CreateTopic(ctx, &topic))

	subTopic := domain.SubTopic{TopicID: topic.ID, Title: "Variables"}
	require.NoError(t, store.CreateSubTopic(ctx, &subTopic))

	nested := domain.Lesson{
		TopicID:     topic.ID,
		SubTopicID:  subTopic.ID,
		Title:       "Declarations",
		ScheduledAt: time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Visible:     true,
	}
	require.NoError(t, store.CreateLesson(ctx, &nested))

	direct := domain.Lesson{TopicID: topic.ID, Title: "Quiz", SortOrder: 1, Visible: true}
	require.NoError(t, store.CreateLesson(ctx, &direct))

	return course, topic, subTopic, nested, direct
}

func TestCreateAssignsIDs(t *testing.T) {
	store := openTestStore(t)
	course, topic, subTopic, nested, direct := seed(t, store)

	for _, id := range []int64{course.ID, topic.ID, subTopic.ID, nested.ID, direct.ID} {
		assert.NotZero(t, id)
	}
}

func TestLoadCourseRoundTrip(t *testing.T) {
	store := openTestStore(t)
	course, topic, subTopic, nested, direct := seed(t, store)

	content, err := store.LoadCourse(context.Background(), course.ID)
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", content.Course.Title)
	require.Len(t, content.Topics, 1)

	tc := content.Topics[0]
	assert.Equal(t, topic.ID, tc.Topic.ID)
	require.Len(t, tc.SubTopics, 1)
	assert.Equal(t, subTopic.ID, tc.SubTopics[0].SubTopic.ID)

	require.Len(t, tc.SubTopics[0].Lessons, 1)
	got := tc.SubTopics[0].Lessons[0]
	assert.Equal(t, nested.ID, got.ID)
	assert.Equal(t, nested.ScheduledAt, got.ScheduledAt)
	assert.Equal(t, 30, got.DurationMin)

	require.Len(t, tc.Lessons, 1)
	assert.Equal(t, direct.ID, tc.Lessons[0].ID)
	assert.Zero(t, tc.Lessons[0].SubTopicID)
	assert.True(t, tc.Lessons[0].ScheduledAt.IsZero(), "unscheduled stays unscheduled")
}

func TestLoadCourseNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LoadCourse(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestMoveLessonBetweenParents(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	course, topic, subTopic, nested, _ := seed(t, store)

	other := domain.Topic{CourseID: course.ID, Title: "Tooling", SortOrder: 1, Visible: true}
	require.NoError(t, store.CreateTopic(ctx, &other))

	// Out of the subtopic, directly under the other topic.
	require.NoError(t, store.MoveLesson(ctx, nested.ID, 0, other.ID))

	tc, err := store.LoadTopicContent(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, tc.Lessons, 1)
	assert.Equal(t, nested.ID, tc.Lessons[0].ID)
	assert.Zero(t, tc.Lessons[0].SubTopicID)

	// The subtopic lost it.
	tc, err = store.LoadTopicContent(ctx, topic.ID)
	require.NoError(t, err)
	assert.Empty(t, tc.SubTopics[0].Lessons)

	// And back into the original subtopic.
	require.NoError(t, store.MoveLesson(ctx, nested.ID, subTopic.ID, topic.ID))
	tc, err = store.LoadTopicContent(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, tc.SubTopics[0].Lessons, 1)
}

func TestMoveSubTopicDragsLessons(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	course, _, subTopic, nested, _ := seed(t, store)

	other := domain.Topic{CourseID: course.ID, Title: "Tooling", SortOrder: 1, Visible: true}
	require.NoError(t, store.CreateTopic(ctx, &other))

	require.NoError(t, store.MoveSubTopic(ctx, subTopic.ID, other.ID))

	tc, err := store.LoadTopicContent(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, tc.SubTopics, 1)
	require.Len(t, tc.SubTopics[0].Lessons, 1)
	assert.Equal(t, nested.ID, tc.SubTopics[0].Lessons[0].ID)
	assert.Equal(t, other.ID, tc.SubTopics[0].Lessons[0].TopicID)
}

func TestMoveMissingRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seed(t, store)

	assert.ErrorIs(t, store.MoveLesson(ctx, 404, 0, 1), domain.ErrNodeNotFound)
	assert.ErrorIs(t, store.MoveSubTopic(ctx, 404, 1), domain.ErrNodeNotFound)
	assert.ErrorIs(t, store.MoveTopic(ctx, 404, 1), domain.ErrNodeNotFound)
}

func TestUpdateSortOrderAndRename(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	_, topic, _, _, _ := seed(t, store)

	require.NoError(t, store.UpdateSortOrder(ctx, domain.KindTopic, topic.ID, 7))
	require.NoError(t, store.Rename(ctx, domain.KindTopic, topic.ID, "Grammar"))

	tc, err := store.LoadTopicContent(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, tc.Topic.SortOrder)
	assert.Equal(t, "Grammar", tc.Topic.Title)

	assert.ErrorIs(t, store.Rename(ctx, domain.KindTopic, 404, "x"), domain.ErrNodeNotFound)
}

func TestDeleteCascades(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	course, topic, subTopic, _, direct := seed(t, store)

	require.NoError(t, store.Delete(ctx, domain.KindSubTopic, subTopic.ID))

	tc, err := store.LoadTopicContent(ctx, topic.ID)
	require.NoError(t, err)
	assert.Empty(t, tc.SubTopics)
	require.Len(t, tc.Lessons, 1, "direct lesson survives")
	assert.Equal(t, direct.ID, tc.Lessons[0].ID)

	require.NoError(t, store.Delete(ctx, domain.KindCourse, course.ID))
	_, err = store.LoadCourse(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	courses, err := store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestTreeBuildsFromLoadedCourse(t *testing.T) {
	store := openTestStore(t)
	course, _, _, _, _ := seed(t, store)

	content, err := store.LoadCourse(context.Background(), course.ID)
	require.NoError(t, err)

	tree := domain.Build(content)
	assert.Equal(t, 5, tree.Size())
	assert.Len(t, tree.Lessons(), 2)
}
