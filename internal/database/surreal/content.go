package surreal

import (
	"context"
	"errors"
	"time"

	"github.com/nfrund/learnhub/internal/database"
	"github.com/nfrund/learnhub/internal/domain"
)

// Courses are stored as one document holding the whole tree. Lessons are
// also stored on their own so they can be fetched by ID, and quizzes live
// in their own table with only a header kept in the tree.

type courseRow struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Subject domain.Subject  `json:"subject"`
	Modules []domain.Module `json:"modules"`
}

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
				prepareQuiz(t.Quiz)
			}
		}
	}
	if err := c.Validate(); err != nil {
		return errors.Join(database.ErrInvalidInput, err)
	}

	// The stored tree only carries quiz headers.
	modules := make([]domain.Module, len(c.Modules))
	for mi, m := range c.Modules {
		topics := make([]domain.Topic, len(m.Topics))
		for ti, t := range m.Topics {
			if t.Quiz != nil {
				t.Quiz = &domain.Quiz{ID: t.Quiz.ID, TopicID: t.Quiz.TopicID, Title: t.Quiz.Title}
			}
			topics[ti] = t
		}
		m.Topics = topics
		modules[mi] = m
	}

	if err := s.execute(ctx, "create course",
		"CREATE type::thing('course', $id) CONTENT $content",
		map[string]any{"id": c.ID, "content": map[string]any{
			"name": c.Name, "subject": c.Subject, "modules": modules,
		}}); err != nil {
		return err
	}
	for _, m := range c.Modules {
		for _, t := range m.Topics {
			if t.Lesson != nil {
				if err := s.execute(ctx, "create lesson",
					"CREATE type::thing('lesson', $id) CONTENT $content",
					map[string]any{"id": t.Lesson.ID, "content": lessonContent(t.Lesson)}); err != nil {
					return err
				}
			}
			if t.Quiz != nil {
				if err := s.insertQuiz(ctx, t.Quiz); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Store) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var rows []courseRow
	if err := s.query(ctx, "list courses",
		"SELECT meta::id(id) AS id, name, subject FROM course ORDER BY name", nil, &rows); err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, domain.Course{ID: r.ID, Name: r.Name, Subject: r.Subject})
	}
	return courses, nil
}

func (s *Store) FindCourseByName(ctx context.Context, name string) (*domain.Course, error) {
	var row courseRow
	found, err := s.queryOne(ctx, "find course",
		"SELECT meta::id(id) AS id, name, subject FROM course WHERE name = $name",
		map[string]any{"name": name}, &row)
	if err != nil || !found {
		return nil, err
	}
	return &domain.Course{ID: row.ID, Name: row.Name, Subject: row.Subject}, nil
}

func (s *Store) CourseTree(ctx context.Context, courseID string) (*domain.Course, error) {
	var row courseRow
	found, err := s.queryOne(ctx, "course tree",
		"SELECT meta::id(id) AS id, name, subject, modules FROM type::thing('course', $id)",
		map[string]any{"id": courseID}, &row)
	if err != nil || !found {
		return nil, err
	}
	return &domain.Course{ID: row.ID, Name: row.Name, Subject: row.Subject, Modules: row.Modules}, nil
}

func (s *Store) FindLesson(ctx context.Context, id string) (*domain.Lesson, error) {
	var l domain.Lesson
	found, err := s.queryOne(ctx, "find lesson",
		"SELECT "+lessonFields+" FROM type::thing('lesson', $id)",
		map[string]any{"id": id}, &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

const lessonFields = `meta::id(id) AS id, course_id, module_id, topic_id, title, learning_objective, content,
	video_filename, thumbnail_filename, textbook_name, textbook_pages, practice_content`

// lessonContent is the lesson document without its ID, which lives in the record ID.
func lessonContent(l *domain.Lesson) map[string]any {
	return map[string]any{
		"course_id":          l.CourseID,
		"module_id":          l.ModuleID,
		"topic_id":           l.TopicID,
		"title":              l.Title,
		"learning_objective": l.LearningObjective,
		"content":            l.Content,
		"video_filename":     l.VideoFilename,
		"thumbnail_filename": l.ThumbnailFilename,
		"textbook_name":      l.TextbookName,
		"textbook_pages":     l.TextbookPages,
		"practice_content":   l.PracticeContent,
	}
}

// Quizzes

type answerRow struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type questionRow struct {
	ID       string      `json:"id"`
	Text     string      `json:"text"`
	Position int         `json:"position"`
	Answers  []answerRow `json:"answers"`
}

type quizRow struct {
	ID        string        `json:"id"`
	TopicID   string        `json:"topic_id"`
	Title     string        `json:"title"`
	Questions []questionRow `json:"questions"`
}

func (r quizRow) quiz() *domain.Quiz {
	q := &domain.Quiz{ID: r.ID, TopicID: r.TopicID, Title: r.Title}
	for _, qr := range r.Questions {
		question := domain.Question{ID: qr.ID, Text: qr.Text, Position: qr.Position}
		for _, a := range qr.Answers {
			question.Answers = append(question.Answers, domain.Answer{ID: a.ID, Text: a.Text, Correct: a.Correct})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func prepareQuiz(q *domain.Quiz) {
	ensureID(&q.ID)
	for qi := range q.Questions {
		question := &q.Questions[qi]
		ensureID(&question.ID)
		if question.Position == 0 {
			question.Position = qi + 1
		}
		for ai := range question.Answers {
			ensureID(&question.Answers[ai].ID)
		}
	}
}

func (s *Store) insertQuiz(ctx context.Context, q *domain.Quiz) error {
	prepareQuiz(q)
	questions := make([]questionRow, 0, len(q.Questions))
	for _, question := range q.Questions {
		qr := questionRow{ID: question.ID, Text: question.Text, Position: question.Position}
		for _, a := range question.Answers {
			qr.Answers = append(qr.Answers, answerRow{ID: a.ID, Text: a.Text, Correct: a.Correct})
		}
		questions = append(questions, qr)
	}
	return s.execute(ctx, "create quiz",
		"CREATE type::thing('quiz', $id) CONTENT $content",
		map[string]any{"id": q.ID, "content": map[string]any{
			"topic_id": q.TopicID, "title": q.Title, "questions": questions,
		}})
}

func (s *Store) CreateQuiz(ctx context.Context, q *domain.Quiz) error {
	return s.insertQuiz(ctx, q)
}

func (s *Store) FindQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	var row quizRow
	found, err := s.queryOne(ctx, "find quiz",
		"SELECT meta::id(id) AS id, topic_id, title, questions FROM type::thing('quiz', $id)",
		map[string]any{"id": id}, &row)
	if err != nil || !found {
		return nil, err
	}
	return row.quiz(), nil
}

func (s *Store) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var rows []quizRow
	if err := s.query(ctx, "list quizzes",
		"SELECT meta::id(id) AS id, topic_id, title FROM quiz ORDER BY title", nil, &rows); err != nil {
		return nil, err
	}
	quizzes := make([]domain.Quiz, 0, len(rows))
	for _, r := range rows {
		quizzes = append(quizzes, *r.quiz())
	}
	return quizzes, nil
}

// Attempts

type attemptRow struct {
	ID          string            `json:"id"`
	QuizID      string            `json:"quiz_id"`
	UserID      string            `json:"user_id"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	SubmittedAt int64             `json:"submitted_at"`
	Responses   []domain.Response `json:"responses,omitempty"`
}

func (r attemptRow) attempt() domain.Attempt {
	return domain.Attempt{
		ID:          r.ID,
		QuizID:      r.QuizID,
		UserID:      r.UserID,
		Score:       r.Score,
		Total:       r.Total,
		SubmittedAt: time.Unix(r.SubmittedAt, 0).UTC(),
	}
}

const attemptFields = "meta::id(id) AS id, quiz_id, user_id, score, total, submitted_at"

func (s *Store) SaveAttempt(ctx context.Context, a *domain.Attempt) error {
	ensureID(&a.ID)
	return s.execute(ctx, "save attempt",
		"CREATE type::thing('attempt', $id) CONTENT $content",
		map[string]any{"id": a.ID, "content": map[string]any{
			"quiz_id":      a.QuizID,
			"user_id":      a.UserID,
			"score":        a.Score,
			"total":        a.Total,
			"submitted_at": a.SubmittedAt.Unix(),
			"responses":    a.Responses,
		}})
}

func (s *Store) ScoresForUser(ctx context.Context, userID string) ([]domain.QuizScore, error) {
	var rows []attemptRow
	if err := s.query(ctx, "query scores",
		"SELECT "+attemptFields+" FROM attempt WHERE user_id = $user_id ORDER BY submitted_at",
		map[string]any{"user_id": userID}, &rows); err != nil {
		return nil, err
	}
	scores := make([]domain.QuizScore, 0, len(rows))
	if len(rows) == 0 {
		return scores, nil
	}

	quizzes, err := s.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(quizzes))
	for _, q := range quizzes {
		titles[q.ID] = q.Title
	}
	for _, r := range rows {
		a := r.attempt()
		scores = append(scores, domain.QuizScore{Title: titles[a.QuizID], Score: a.Score, Result: a.Result()})
	}
	return scores, nil
}

func (s *Store) ListAttempts(ctx context.Context) ([]domain.Attempt, error) {
	var rows []attemptRow
	if err := s.query(ctx, "list attempts",
		"SELECT "+attemptFields+" FROM attempt ORDER BY submitted_at", nil, &rows); err != nil {
		return nil, err
	}
	attempts := make([]domain.Attempt, 0, len(rows))
	for _, r := range rows {
		attempts = append(attempts, r.attempt())
	}
	return attempts, nil
}
