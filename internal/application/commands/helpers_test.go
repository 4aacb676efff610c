package commands

import (
	"context"
	"fmt"

	"coursecraft/internal/domain"
)

// fakeStore records every call in order and fails any method listed in
// errs, so tests can pin down both the call sequence and the behavior on
// a failing endpoint.
type fakeStore struct {
	calls  []string
	errs   map[string]error
	nextID int64

	lessonMoves []lessonMove
	sortUpdates []sortUpdate
}

type lessonMove struct {
	LessonID   int64
	SubTopicID int64
	TopicID    int64
}

type sortUpdate struct {
	Kind  domain.Kind
	ID    int64
	Index int
}

func newFakeStore() *fakeStore {
	return &fakeStore{errs: map[string]error{}, nextID: 100}
}

func (s *fakeStore) record(method string) error {
	s.calls = append(s.calls, method)
	return s.errs[method]
}

func (s *fakeStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return nil, s.record("ListCourses")
}

func (s *fakeStore) LoadCourse(ctx context.Context, courseID int64) (*domain.CourseContent, error) {
	return nil, s.record("LoadCourse")
}

func (s *fakeStore) LoadTopicContent(ctx context.Context, topicID int64) (*domain.TopicContent, error) {
	if err := s.record("LoadTopicContent"); err != nil {
		return nil, err
	}
	return &domain.TopicContent{
		Topic: domain.Topic{ID: topicID, CourseID: 1, Title: "loaded"},
		Lessons: []domain.Lesson{
			{ID: 50, TopicID: topicID, Title: "Loaded A", SortOrder: 1},
			{ID: 51, TopicID: topicID, Title: "Loaded B", SortOrder: 0},
		},
	}, nil
}

func (s *fakeStore) CreateCourse(ctx context.Context, c *domain.Course) error {
	if err := s.record("CreateCourse"); err != nil {
		return err
	}
	s.nextID++
	c.ID = s.nextID
	return nil
}

func (s *fakeStore) CreateTopic(ctx context.Context, t *domain.Topic) error {
	if err := s.record("CreateTopic"); err != nil {
		return err
	}
	s.nextID++
	t.ID = s.nextID
	return nil
}

func (s *fakeStore) CreateSubTopic(ctx context.Context, st *domain.SubTopic) error {
	if err := s.record("CreateSubTopic"); err != nil {
		return err
	}
	s.nextID++
	st.ID = s.nextID
	return nil
}

func (s *fakeStore) CreateLesson(ctx context.Context, l *domain.Lesson) error {
	if err := s.record("CreateLesson"); err != nil {
		return err
	}
	s.nextID++
	l.ID = s.nextID
	return nil
}

func (s *fakeStore) MoveLesson(ctx context.Context, lessonID, subTopicID, topicID int64) error {
	s.lessonMoves = append(s.lessonMoves, lessonMove{lessonID, subTopicID, topicID})
	return s.record("MoveLesson")
}

func (s *fakeStore) MoveSubTopic(ctx context.Context, subTopicID, topicID int64) error {
	return s.record("MoveSubTopic")
}

func (s *fakeStore) MoveTopic(ctx context.Context, topicID, courseID int64) error {
	return s.record("MoveTopic")
}

func (s *fakeStore) UpdateSortOrder(ctx context.Context, kind domain.Kind, id int64, index int) error {
	s.sortUpdates = append(s.sortUpdates, sortUpdate{kind, id, index})
	return s.record("UpdateSortOrder")
}

func (s *fakeStore) Rename(ctx context.Context, kind domain.Kind, id int64, title string) error {
	return s.record("Rename")
}

func (s *fakeStore) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	return s.record(fmt.Sprintf("Delete %s %d", kind, id))
}

// fakeWidget records refreshes and node additions/removals.
type fakeWidget struct {
	refreshes int
	added     [][]*domain.Node
	removed   [][]string
}

func (w *fakeWidget) AddNodes(nodes []*domain.Node, parentKey string) {
	w.added = append(w.added, nodes)
}

func (w *fakeWidget) RemoveNodes(keys []string) {
	w.removed = append(w.removed, keys)
}

func (w *fakeWidget) Refresh() { w.refreshes++ }

// testTree builds the shared fixture:
//
//	Go Basics (course 1)
//	├── Syntax (topic 1)
//	│   ├── Variables (subtopic 10)
//	│   │   ├── Declarations (lesson 7)
//	│   │   └── Shadowing (lesson 8)
//	│   └── Quiz (lesson 9, directly under the topic)
//	└── Tooling (topic 2, empty)
func testTree() *domain.Tree {
	return domain.Build(&domain.CourseContent{
		Course: domain.Course{ID: 1, Title: "Go Basics", Visible: true},
		Topics: []domain.TopicContent{
			{
				Topic: domain.Topic{ID: 1, CourseID: 1, Title: "Syntax", SortOrder: 0},
				SubTopics: []domain.SubTopicContent{
					{
						SubTopic: domain.SubTopic{ID: 10, TopicID: 1, Title: "Variables", SortOrder: 0},
						Lessons: []domain.Lesson{
							{ID: 7, TopicID: 1, SubTopicID: 10, Title: "Declarations", SortOrder: 0},
							{ID: 8, TopicID: 1, SubTopicID: 10, Title: "Shadowing", SortOrder: 1},
						},
					},
				},
				Lessons: []domain.Lesson{
					{ID: 9, TopicID: 1, Title: "Quiz", SortOrder: 1},
				},
			},
			{
				Topic: domain.Topic{ID: 2, CourseID: 1, Title: "Tooling", SortOrder: 1},
			},
		},
	})
}

func mustFind(tree *domain.Tree, kind domain.Kind, id int64) *domain.Node {
	node, err := tree.FindByEntityID(kind, id)
	if err != nil {
		panic(err)
	}
	return node
}
