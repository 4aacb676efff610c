// Package sqlite provides the local CourseStore backed by an embedded
// SQLite database. It is the offline counterpart of the HTTP store: the
// same port, the same structural guarantees, no server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coursecraft/internal/domain"
	"coursecraft/internal/ports"

	_ "modernc.org/sqlite"
)

// Store implements ports.CourseStore on SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements CourseStore
var _ ports.CourseStore = (*Store)(nil)

// Open creates or opens the database at dbPath. ":memory:" opens a
// throwaway in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		// Expand ~ in path
		if len(dbPath) > 0 && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			visible INTEGER NOT NULL DEFAULT 1
		);
		CREATE TABLE IF NOT EXISTS topics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id INTEGER NOT NULL REFERENCES courses(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			visible INTEGER NOT NULL DEFAULT 1
		);
		CREATE TABLE IF NOT EXISTS sub_topics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic_id INTEGER NOT NULL REFERENCES topics(id),
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS lessons (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic_id INTEGER NOT NULL REFERENCES topics(id),
			sub_topic_id INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			scheduled_at INTEGER NOT NULL DEFAULT 0,
			duration_min INTEGER NOT NULL DEFAULT 0,
			visible INTEGER NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_topics_course ON topics(course_id);
		CREATE INDEX IF NOT EXISTS idx_sub_topics_topic ON sub_topics(topic_id);
		CREATE INDEX IF NOT EXISTS idx_lessons_topic ON lessons(topic_id);
		CREATE INDEX IF NOT EXISTS idx_lessons_sub_topic ON lessons(sub_topic_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ListCourses returns all courses ordered by title
func (s *Store) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, visible
		FROM courses ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Visible); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// LoadCourse loads a course with its full nested content.
func (s *Store) LoadCourse(ctx context.Context, courseID int64) (*domain.CourseContent, error) {
	var content domain.CourseContent
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, visible
		FROM courses WHERE id = ?
	`, courseID).Scan(&content.Course.ID, &content.Course.Title, &content.Course.Description, &content.Course.Visible)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %d: %w", courseID, domain.ErrNodeNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_id, title, description, sort_order, visible
		FROM topics WHERE course_id = ? ORDER BY sort_order
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.CourseID, &t.Title, &t.Description, &t.SortOrder, &t.Visible); err != nil {
			return nil, err
		}
		content.Topics = append(content.Topics, domain.TopicContent{Topic: t})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range content.Topics {
		tc, err := s.LoadTopicContent(ctx, content.Topics[i].Topic.ID)
		if err != nil {
			return nil, err
		}
		content.Topics[i] = *tc
	}
	return &content, nil
}

// LoadTopicContent loads one topic with its subtopics and direct lessons.
func (s *Store) LoadTopicContent(ctx context.Context, topicID int64) (*domain.TopicContent, error) {
	var tc domain.TopicContent
	err := s.db.QueryRowContext(ctx, `
		SELECT id, course_id, title, description, sort_order, visible
		FROM topics WHERE id = ?
	`, topicID).Scan(&tc.Topic.ID, &tc.Topic.CourseID, &tc.Topic.Title, &tc.Topic.Description, &tc.Topic.SortOrder, &tc.Topic.Visible)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("topic %d: %w", topicID, domain.ErrNodeNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic_id, title, sort_order
		FROM sub_topics WHERE topic_id = ? ORDER BY sort_order
	`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var st domain.SubTopic
		if err := rows.Scan(&st.ID, &st.TopicID, &st.Title, &st.SortOrder); err != nil {
			return nil, err
		}
		tc.SubTopics = append(tc.SubTopics, domain.SubTopicContent{SubTopic: st})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tc.SubTopics {
		lessons, err := s.lessonsOf(ctx, topicID, tc.SubTopics[i].SubTopic.ID)
		if err != nil {
			return nil, err
		}
		tc.SubTopics[i].Lessons = lessons
	}

	// Lessons hanging directly under the topic (sub_topic_id 0).
	direct, err := s.lessonsOf(ctx, topicID, 0)
	if err != nil {
		return nil, err
	}
	tc.Lessons = direct
	return &tc, nil
}

func (s *Store) lessonsOf(ctx context.Context, topicID, subTopicID int64) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic_id, sub_topic_id, title, description, sort_order, scheduled_at, duration_min, visible
		FROM lessons WHERE topic_id = ? AND sub_topic_id = ? ORDER BY sort_order
	`, topicID, subTopicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		var scheduled int64
		if err := rows.Scan(&l.ID, &l.TopicID, &l.SubTopicID, &l.Title, &l.Description, &l.SortOrder, &scheduled, &l.DurationMin, &l.Visible); err != nil {
			return nil, err
		}
		if scheduled != 0 {
			l.ScheduledAt = time.Unix(scheduled, 0).UTC()
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// CreateCourse inserts a course and fills in its assigned ID
func (s *Store) CreateCourse(ctx context.Context, c *domain.Course) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (title, description, visible) VALUES (?, ?, ?)
	`, c.Title, c.Description, c.Visible)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// CreateTopic inserts a topic and fills in its assigned ID
func (s *Store) CreateTopic(ctx context.Context, t *domain.Topic) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (course_id, title, description, sort_order, visible)
		VALUES (?, ?, ?, ?, ?)
	`, t.CourseID, t.Title, t.Description, t.SortOrder, t.Visible)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

// CreateSubTopic inserts a subtopic and fills in its assigned ID
func (s *Store) CreateSubTopic(ctx context.Context, st *domain.SubTopic) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sub_topics (topic_id, title, sort_order) VALUES (?, ?, ?)
	`, st.TopicID, st.Title, st.SortOrder)
	if err != nil {
		return err
	}
	st.ID, err = res.LastInsertId()
	return err
}

// CreateLesson inserts a lesson and fills in its assigned ID
func (s *Store) CreateLesson(ctx context.Context, l *domain.Lesson) error {
	var scheduled int64
	if !l.ScheduledAt.IsZero() {
		scheduled = l.ScheduledAt.Unix()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO lessons (topic_id, sub_topic_id, title, description, sort_order, scheduled_at, duration_min, visible)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.TopicID, l.SubTopicID, l.Title, l.Description, l.SortOrder, scheduled, l.DurationMin, l.Visible)
	if err != nil {
		return err
	}
	l.ID, err = res.LastInsertId()
	return err
}

// MoveLesson re-parents a lesson. subTopicID 0 places it directly under
// its topic.
func (s *Store) MoveLesson(ctx context.Context, lessonID, subTopicID, topicID int64) error {
	return s.moveRow(ctx, `
		UPDATE lessons SET sub_topic_id = ?, topic_id = ? WHERE id = ?
	`, subTopicID, topicID, lessonID)
}

// MoveSubTopic re-parents a subtopic and drags its lessons' topic link
// along so the topic_id denormalization stays consistent.
func (s *Store) MoveSubTopic(ctx context.Context, subTopicID, topicID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE sub_topics SET topic_id = ? WHERE id = ?`, topicID, subTopicID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subtopic %d: %w", subTopicID, domain.ErrNodeNotFound)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE lessons SET topic_id = ? WHERE sub_topic_id = ?`, topicID, subTopicID); err != nil {
		return err
	}
	return tx.Commit()
}

// MoveTopic re-parents a topic under another course.
func (s *Store) MoveTopic(ctx context.Context, topicID, courseID int64) error {
	return s.moveRow(ctx, `
		UPDATE topics SET course_id = ? WHERE id = ?
	`, courseID, topicID)
}

func (s *Store) moveRow(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

// UpdateSortOrder persists one entity's sibling position
func (s *Store) UpdateSortOrder(ctx context.Context, kind domain.Kind, id int64, index int) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return s.moveRow(ctx, fmt.Sprintf(`UPDATE %s SET sort_order = ? WHERE id = ?`, table), index, id)
}

// Rename updates an entity's title
func (s *Store) Rename(ctx context.Context, kind domain.Kind, id int64, title string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return s.moveRow(ctx, fmt.Sprintf(`UPDATE %s SET title = ? WHERE id = ?`, table), title, id)
}

// Delete removes an entity and everything beneath it in one transaction.
func (s *Store) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	switch kind {
	case domain.KindLesson:
		_, err = tx.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	case domain.KindSubTopic:
		if _, err = tx.ExecContext(ctx, `DELETE FROM lessons WHERE sub_topic_id = ?`, id); err == nil {
			_, err = tx.ExecContext(ctx, `DELETE FROM sub_topics WHERE id = ?`, id)
		}
	case domain.KindTopic:
		if _, err = tx.ExecContext(ctx, `DELETE FROM lessons WHERE topic_id = ?`, id); err == nil {
			if _, err = tx.ExecContext(ctx, `DELETE FROM sub_topics WHERE topic_id = ?`, id); err == nil {
				_, err = tx.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
			}
		}
	case domain.KindCourse:
		err = s.deleteCourse(ctx, tx, id)
	default:
		err = fmt.Errorf("cannot delete kind %s", kind)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) deleteCourse(ctx context.Context, tx *sql.Tx, courseID int64) error {
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM lessons WHERE topic_id IN (SELECT id FROM topics WHERE course_id = ?)
	`, courseID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM sub_topics WHERE topic_id IN (SELECT id FROM topics WHERE course_id = ?)
	`, courseID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE course_id = ?`, courseID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, courseID)
	return err
}

// tableFor maps a kind to its table name
func tableFor(kind domain.Kind) (string, error) {
	switch kind {
	case domain.KindCourse:
		return "courses", nil
	case domain.KindTopic:
		return "topics", nil
	case domain.KindSubTopic:
		return "sub_topics", nil
	case domain.KindLesson:
		return "lessons", nil
	default:
		return "", fmt.Errorf("unknown kind %s", kind)
	}
}
