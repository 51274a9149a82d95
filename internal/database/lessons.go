package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nfrund/learnhub/internal/domain"
)

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// CreateCourse stores the full tree in one transaction and fills in the IDs
// and parent references of every node.
func (s *Store) CreateCourse(ctx context.Context, c *domain.Course) error {
	ensureID(&c.ID)
	for mi := range c.Modules {
		m := &c.Modules[mi]
		ensureID(&m.ID)
		m.CourseID = c.ID
		if m.Position == 0 {
			m.Position = mi + 1
		}
		for ti := range m.Topics {
			t := &m.Topics[ti]
			ensureID(&t.ID)
			t.ModuleID = m.ID
			if t.Position == 0 {
				t.Position = ti + 1
			}
			if t.Lesson != nil {
				ensureID(&t.Lesson.ID)
				t.Lesson.CourseID, t.Lesson.ModuleID, t.Lesson.TopicID = c.ID, m.ID, t.ID
			}
			if t.Quiz != nil {
				t.Quiz.TopicID = t.ID
			}
		}
	}
	if err := c.Validate(); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}

	return s.write(ctx, "create course", func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO courses (id, name, subject) VALUES (?, ?, ?)`,
			c.ID, c.Name, c.Subject); err != nil {
			return err
		}
		for _, m := range c.Modules {
			if _, err := tx.ExecContext(ctx, `INSERT INTO modules (id, course_id, name, position) VALUES (?, ?, ?, ?)`,
				m.ID, m.CourseID, m.Name, m.Position); err != nil {
				return err
			}
			for _, t := range m.Topics {
				if _, err := tx.ExecContext(ctx, `INSERT INTO topics (id, module_id, name, position) VALUES (?, ?, ?, ?)`,
					t.ID, t.ModuleID, t.Name, t.Position); err != nil {
					return err
				}
				if l := t.Lesson; l != nil {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO lessons (id, course_id, module_id, topic_id, title, learning_objective, content,
							video_filename, thumbnail_filename, textbook_name, textbook_pages, practice_content)
						 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
						l.ID, l.CourseID, l.ModuleID, l.TopicID, l.Title, l.LearningObjective, l.Content,
						l.VideoFilename, l.ThumbnailFilename, l.TextbookName, l.TextbookPages, l.PracticeContent); err != nil {
						return err
					}
				}
				if t.Quiz != nil {
					if err := insertQuiz(ctx, tx, t.Quiz); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func (s *Store) ListCourses(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, subject FROM courses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) FindCourseByName(ctx context.Context, name string) (*domain.Course, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	var c domain.Course
	err := s.db.QueryRowContext(ctx, `SELECT id, name, subject FROM courses WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &c.Subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}
	return &c, nil
}

// CourseTree loads a course with its modules, topics, lessons and quiz
// headers. It returns (nil, nil) for an unknown course.
func (s *Store) CourseTree(ctx context.Context, courseID string) (*domain.Course, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	var c domain.Course
	err := s.db.QueryRowContext(ctx, `SELECT id, name, subject FROM courses WHERE id = ?`, courseID).
		Scan(&c.ID, &c.Name, &c.Subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}

	modules, err := s.loadModules(ctx, courseID)
	if err != nil {
		return nil, err
	}
	topics, err := s.loadTopics(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.loadLessons(ctx, `WHERE course_id = ?`, courseID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.loadTopicQuizzes(ctx, courseID)
	if err != nil {
		return nil, err
	}

	byTopic := make(map[string]*domain.Lesson, len(lessons))
	for i := range lessons {
		byTopic[lessons[i].TopicID] = &lessons[i]
	}
	for i := range modules {
		for _, t := range topics {
			if t.ModuleID != modules[i].ID {
				continue
			}
			t.Lesson = byTopic[t.ID]
			t.Quiz = quizzes[t.ID]
			modules[i].Topics = append(modules[i].Topics, t)
		}
	}
	c.Modules = modules
	return &c, nil
}

func (s *Store) loadModules(ctx context.Context, courseID string) ([]domain.Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, name, position FROM modules WHERE course_id = ? ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var modules []domain.Module
	for rows.Next() {
		var m domain.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Name, &m.Position); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (s *Store) loadTopics(ctx context.Context, courseID string) ([]domain.Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.module_id, t.name, t.position
		 FROM topics t JOIN modules m ON m.id = t.module_id
		 WHERE m.course_id = ? ORDER BY m.position, t.position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.ModuleID, &t.Name, &t.Position); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) loadLessons(ctx context.Context, where string, args ...any) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, module_id, topic_id, title, learning_objective, content,
			video_filename, thumbnail_filename, textbook_name, textbook_pages, practice_content
		 FROM lessons `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.ModuleID, &l.TopicID, &l.Title, &l.LearningObjective, &l.Content,
			&l.VideoFilename, &l.ThumbnailFilename, &l.TextbookName, &l.TextbookPages, &l.PracticeContent); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (s *Store) loadTopicQuizzes(ctx context.Context, courseID string) (map[string]*domain.Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.topic_id, q.title
		 FROM quizzes q JOIN topics t ON t.id = q.topic_id JOIN modules m ON m.id = t.module_id
		 WHERE m.course_id = ?`, courseID)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make(map[string]*domain.Quiz)
	for rows.Next() {
		var q domain.Quiz
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Title); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes[q.TopicID] = &q
	}
	return quizzes, rows.Err()
}

func (s *Store) FindLesson(ctx context.Context, id string) (*domain.Lesson, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	lessons, err := s.loadLessons(ctx, `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, nil
	}
	return &lessons[0], nil
}
