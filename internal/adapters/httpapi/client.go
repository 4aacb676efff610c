// Package httpapi provides the CourseStore backed by the remote authoring
// server's REST API. Every structural mutation is one request; the server's
// answer decides whether the local tree may change.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"coursecraft/internal/domain"
	"coursecraft/internal/ports"
)

// Client implements ports.CourseStore over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Ensure Client implements CourseStore
var _ ports.CourseStore = (*Client)(nil)

// New creates a client for the given base URL. token may be empty for
// servers without authentication.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNodeNotFound && e.Code == http.StatusNotFound
}

// Wire shapes. The server speaks camelCase JSON.

type courseDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
}

type topicDTO struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	Visible     bool   `json:"visible"`
}

type subTopicDTO struct {
	ID        int64  `json:"id"`
	TopicID   int64  `json:"topicId"`
	Title     string `json:"title"`
	SortOrder int    `json:"sortOrder"`
}

type lessonDTO struct {
	ID          int64  `json:"id"`
	TopicID     int64  `json:"topicId"`
	SubTopicID  int64  `json:"subTopicId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	ScheduledAt string `json:"scheduledAt,omitempty"` // RFC 3339, empty = unscheduled
	DurationMin int    `json:"durationMin"`
	Visible     bool   `json:"visible"`
}

type topicContentDTO struct {
	Topic     topicDTO          `json:"topic"`
	SubTopics []subTopicTreeDTO `json:"subTopics"`
	Lessons   []lessonDTO       `json:"lessons"`
}

type subTopicTreeDTO struct {
	SubTopic subTopicDTO `json:"subTopic"`
	Lessons  []lessonDTO `json:"lessons"`
}

type courseContentDTO struct {
	Course courseDTO         `json:"course"`
	Topics []topicContentDTO `json:"topics"`
}

// do sends one request and decodes the response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ListCourses fetches all courses
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var dtos []courseDTO
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, &dtos); err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(dtos))
	for _, d := range dtos {
		courses = append(courses, toCourse(d))
	}
	return courses, nil
}

// LoadCourse fetches a course with its full nested content
func (c *Client) LoadCourse(ctx context.Context, courseID int64) (*domain.CourseContent, error) {
	var dto courseContentDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/courses/%d", courseID), nil, &dto); err != nil {
		return nil, err
	}
	content := &domain.CourseContent{Course: toCourse(dto.Course)}
	for _, tc := range dto.Topics {
		content.Topics = append(content.Topics, toTopicContent(tc))
	}
	return content, nil
}

// LoadTopicContent fetches one topic's subtree for lazy expansion
func (c *Client) LoadTopicContent(ctx context.Context, topicID int64) (*domain.TopicContent, error) {
	var dto topicContentDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/topics/%d", topicID), nil, &dto); err != nil {
		return nil, err
	}
	tc := toTopicContent(dto)
	return &tc, nil
}

// CreateCourse posts a new course and keeps the server-assigned id
func (c *Client) CreateCourse(ctx context.Context, course *domain.Course) error {
	var created courseDTO
	if err := c.do(ctx, http.MethodPost, "/api/courses", fromCourse(*course), &created); err != nil {
		return err
	}
	course.ID = created.ID
	return nil
}

// CreateTopic posts a new topic and keeps the server-assigned id
func (c *Client) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	var created topicDTO
	if err := c.do(ctx, http.MethodPost, "/api/topics", fromTopic(*topic), &created); err != nil {
		return err
	}
	topic.ID = created.ID
	return nil
}

// CreateSubTopic posts a new subtopic and keeps the server-assigned id
func (c *Client) CreateSubTopic(ctx context.Context, st *domain.SubTopic) error {
	var created subTopicDTO
	if err := c.do(ctx, http.MethodPost, "/api/subtopics", fromSubTopic(*st), &created); err != nil {
		return err
	}
	st.ID = created.ID
	return nil
}

// CreateLesson posts a new lesson and keeps the server-assigned id
func (c *Client) CreateLesson(ctx context.Context, l *domain.Lesson) error {
	var created lessonDTO
	if err := c.do(ctx, http.MethodPost, "/api/lessons", fromLesson(*l), &created); err != nil {
		return err
	}
	l.ID = created.ID
	return nil
}

// MoveLesson re-parents a lesson. subTopicID 0 places it directly under
// the topic.
func (c *Client) MoveLesson(ctx context.Context, lessonID, subTopicID, topicID int64) error {
	body := map[string]int64{"subTopicId": subTopicID, "topicId": topicID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/lessons/%d/move", lessonID), body, nil)
}

// MoveSubTopic re-parents a subtopic
func (c *Client) MoveSubTopic(ctx context.Context, subTopicID, topicID int64) error {
	body := map[string]int64{"topicId": topicID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/subtopics/%d/move", subTopicID), body, nil)
}

// MoveTopic re-parents a topic
func (c *Client) MoveTopic(ctx context.Context, topicID, courseID int64) error {
	body := map[string]int64{"courseId": courseID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/topics/%d/move", topicID), body, nil)
}

// UpdateSortOrder persists one entity's sibling position
func (c *Client) UpdateSortOrder(ctx context.Context, kind domain.Kind, id int64, index int) error {
	path, err := resourcePath(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path+"/order", map[string]int{"sortOrder": index}, nil)
}

// Rename updates an entity's title
func (c *Client) Rename(ctx context.Context, kind domain.Kind, id int64, title string) error {
	path, err := resourcePath(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path+"/title", map[string]string{"title": title}, nil)
}

// Delete removes an entity and everything beneath it
func (c *Client) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	path, err := resourcePath(kind, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func resourcePath(kind domain.Kind, id int64) (string, error) {
	switch kind {
	case domain.KindCourse:
		return fmt.Sprintf("/api/courses/%d", id), nil
	case domain.KindTopic:
		return fmt.Sprintf("/api/topics/%d", id), nil
	case domain.KindSubTopic:
		return fmt.Sprintf("/api/subtopics/%d", id), nil
	case domain.KindLesson:
		return fmt.Sprintf("/api/lessons/%d", id), nil
	default:
		return "", fmt.Errorf("unknown kind %s", kind)
	}
}

func toCourse(d courseDTO) domain.Course {
	return domain.Course{ID: d.ID, Title: d.Title, Description: d.Description, Visible: d.Visible}
}

func fromCourse(c domain.Course) courseDTO {
	return courseDTO{ID: c.ID, Title: c.Title, Description: c.Description, Visible: c.Visible}
}

func toTopic(d topicDTO) domain.Topic {
	return domain.Topic{ID: d.ID, CourseID: d.CourseID, Title: d.Title, Description: d.Description, SortOrder: d.SortOrder, Visible: d.Visible}
}

func fromTopic(t domain.Topic) topicDTO {
	return topicDTO{ID: t.ID, CourseID: t.CourseID, Title: t.Title, Description: t.Description, SortOrder: t.SortOrder, Visible: t.Visible}
}

func toSubTopic(d subTopicDTO) domain.SubTopic {
	return domain.SubTopic{ID: d.ID, TopicID: d.TopicID, Title: d.Title, SortOrder: d.SortOrder}
}

func fromSubTopic(st domain.SubTopic) subTopicDTO {
	return subTopicDTO{ID: st.ID, TopicID: st.TopicID, Title: st.Title, SortOrder: st.SortOrder}
}

func toLesson(d lessonDTO) domain.Lesson {
	l := domain.Lesson{
		ID:          d.ID,
		TopicID:     d.TopicID,
		SubTopicID:  d.SubTopicID,
		Title:       d.Title,
		Description: d.Description,
		SortOrder:   d.SortOrder,
		DurationMin: d.DurationMin,
		Visible:     d.Visible,
	}
	if d.ScheduledAt != "" {
		if at, err := time.Parse(time.RFC3339, d.ScheduledAt); err == nil {
			l.ScheduledAt = at
		}
	}
	return l
}

func fromLesson(l domain.Lesson) lessonDTO {
	d := lessonDTO{
		ID:          l.ID,
		TopicID:     l.TopicID,
		SubTopicID:  l.SubTopicID,
		Title:       l.Title,
		Description: l.Description,
		SortOrder:   l.SortOrder,
		DurationMin: l.DurationMin,
		Visible:     l.Visible,
	}
	if !l.ScheduledAt.IsZero() {
		d.ScheduledAt = l.ScheduledAt.Format(time.RFC3339)
	}
	return d
}

func toTopicContent(d topicContentDTO) domain.TopicContent {
	tc := domain.TopicContent{Topic: toTopic(d.Topic)}
	for _, st := range d.SubTopics {
		stc := domain.SubTopicContent{SubTopic: toSubTopic(st.SubTopic)}
		for _, l := range st.Lessons {
			stc.Lessons = append(stc.Lessons, toLesson(l))
		}
		tc.SubTopics = append(tc.SubTopics, stc)
	}
	for _, l := range d.Lessons {
		tc.Lessons = append(tc.Lessons, toLesson(l))
	}
	return tc
}
