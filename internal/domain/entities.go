package domain

import "time"

// Course is the root entity of a hierarchy. ID 0 means not yet saved.
type Course struct {
	ID          int64
	Title       string
	Description string
	Visible     bool
}

// Topic is a direct child of a Course.
type Topic struct {
	ID          int64
	CourseID    int64
	Title       string
	Description string
	SortOrder   int
	Visible     bool
}

// SubTopic is an optional grouping level between a Topic and its Lessons.
type SubTopic struct {
	ID        int64
	TopicID   int64
	Title     string
	SortOrder int
}

// Lesson is a leaf entity. It always belongs to a Topic; SubTopicID is 0
// when the lesson hangs directly under the topic.
type Lesson struct {
	ID          int64
	TopicID     int64
	SubTopicID  int64
	Title       string
	Description string
	SortOrder   int
	ScheduledAt time.Time // zero = unscheduled
	DurationMin int
	Visible     bool
}

// CourseContent is the nested payload shape the store returns for a full
// course, ready to be turned into a Tree.
type CourseContent struct {
	Course Course
	Topics []TopicContent
}

// TopicContent carries one topic with its subtopics and its direct lessons.
type TopicContent struct {
	Topic     Topic
	SubTopics []SubTopicContent
	Lessons   []Lesson
}

// SubTopicContent carries one subtopic with its lessons.
type SubTopicContent struct {
	SubTopic SubTopic
	Lessons  []Lesson
}
