package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecraft/internal/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// newTestClient spins up a server that records requests and replies with
// the given status and body.
func newTestClient(t *testing.T, status int, respond any) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		requests = append(requests, rec)

		w.WriteHeader(status)
		if respond != nil {
			json.NewEncoder(w).Encode(respond)
		}
	}))
	t.Cleanup(server.Close)

	return New(server.URL, "secret"), &requests
}

func TestLoadCourseDecodesNestedContent(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, map[string]any{
		"course": map[string]any{"id": 1, "title": "Go Basics", "visible": true},
		"topics": []map[string]any{
			{
				"topic": map[string]any{"id": 3, "courseId": 1, "title": "Syntax", "sortOrder": 0, "visible": true},
				"subTopics": []map[string]any{
					{
						"subTopic": map[string]any{"id": 10, "topicId": 3, "title": "Variables", "sortOrder": 0},
						"lessons": []map[string]any{
							{"id": 7, "topicId": 3, "subTopicId": 10, "title": "Declarations", "scheduledAt": "2026-09-07T09:00:00Z", "durationMin": 30},
						},
					},
				},
				"lessons": []map[string]any{
					{"id": 9, "topicId": 3, "title": "Quiz", "sortOrder": 1},
				},
			},
		},
	})

	content, err := client.LoadCourse(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", content.Course.Title)
	require.Len(t, content.Topics, 1)
	tc := content.Topics[0]
	require.Len(t, tc.SubTopics, 1)
	require.Len(t, tc.SubTopics[0].Lessons, 1)

	lesson := tc.SubTopics[0].Lessons[0]
	assert.Equal(t, int64(10), lesson.SubTopicID)
	assert.Equal(t, time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC), lesson.ScheduledAt)
	assert.Equal(t, 30, lesson.DurationMin)

	require.Len(t, tc.Lessons, 1)
	assert.True(t, tc.Lessons[0].ScheduledAt.IsZero())

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/courses/1", req.Path)
	assert.Equal(t, "Bearer secret", req.Auth)
}

func TestMoveLessonSendsBothParentIDs(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, nil)

	require.NoError(t, client.MoveLesson(context.Background(), 7, 0, 2))

	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/lessons/7/move", req.Path)
	assert.Equal(t, float64(0), req.Body["subTopicId"])
	assert.Equal(t, float64(2), req.Body["topicId"])
}

func TestCreateTopicKeepsAssignedID(t *testing.T) {
	client, requests := newTestClient(t, http.StatusCreated, map[string]any{"id": 42, "courseId": 1, "title": "Concurrency"})

	topic := domain.Topic{CourseID: 1, Title: "Concurrency", SortOrder: 2, Visible: true}
	require.NoError(t, client.CreateTopic(context.Background(), &topic))
	assert.Equal(t, int64(42), topic.ID)

	req := (*requests)[0]
	assert.Equal(t, "/api/topics", req.Path)
	assert.Equal(t, "Concurrency", req.Body["title"])
	assert.Equal(t, float64(2), req.Body["sortOrder"])
}

func TestUpdateSortOrderAndRenamePaths(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, nil)
	ctx := context.Background()

	require.NoError(t, client.UpdateSortOrder(ctx, domain.KindSubTopic, 10, 3))
	require.NoError(t, client.Rename(ctx, domain.KindLesson, 7, "Intro"))
	require.NoError(t, client.Delete(ctx, domain.KindTopic, 5))

	assert.Equal(t, "/api/subtopics/10/order", (*requests)[0].Path)
	assert.Equal(t, float64(3), (*requests)[0].Body["sortOrder"])
	assert.Equal(t, "/api/lessons/7/title", (*requests)[1].Path)
	assert.Equal(t, "Intro", (*requests)[1].Body["title"])
	assert.Equal(t, http.MethodDelete, (*requests)[2].Method)
	assert.Equal(t, "/api/topics/5", (*requests)[2].Path)
}

func TestStatusErrors(t *testing.T) {
	client, _ := newTestClient(t, http.StatusNotFound, nil)

	err := client.MoveSubTopic(context.Background(), 404, 1)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound, "404 maps to the missing-node sentinel")
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError, nil)

	err := client.Delete(context.Background(), domain.KindLesson, 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNodeNotFound)
}
