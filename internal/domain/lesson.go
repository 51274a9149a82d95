package domain

import (
	"context"
	"fmt"
	"path"
)

// Subject is the discipline a course belongs to.
type Subject string

const (
	SubjectCalculus  Subject = "Calculus"
	SubjectLinAlg    Subject = "Linear Algebra"
	SubjectBiology   Subject = "Biology"
	SubjectChemistry Subject = "Chemistry"
	SubjectPhysics   Subject = "Physics"
	SubjectEnglish   Subject = "English"
	SubjectFrench    Subject = "French"
	SubjectCompSci   Subject = "Computer Science"
	SubjectMath      Subject = "Mathematics"
)

// Course is the top of the lesson tree: Course -> Module -> Topic.
type Course struct {
	ID      string   `json:"id"`
	Name    string   `json:"name" validate:"required,max=100"`
	Subject Subject  `json:"subject"`
	Modules []Module `json:"modules,omitempty" validate:"dive"`
}

// Module groups topics within a course.
type Module struct {
	ID       string  `json:"id"`
	CourseID string  `json:"course_id"`
	Name     string  `json:"name" validate:"required,max=100"`
	Position int     `json:"position"`
	Topics   []Topic `json:"topics,omitempty" validate:"dive"`
}

// Topic holds at most one lesson and one quiz.
type Topic struct {
	ID       string  `json:"id"`
	ModuleID string  `json:"module_id"`
	Name     string  `json:"name" validate:"required,max=100"`
	Position int     `json:"position"`
	Lesson   *Lesson `json:"lesson,omitempty"`
	Quiz     *Quiz   `json:"quiz,omitempty"`
}

// Lesson is the teaching material of a topic. LearningObjective,
// Content and TextbookPages hold HTML fragments and must be sanitized
// before rendering.
type Lesson struct {
	ID                string `json:"id"`
	CourseID          string `json:"course_id"`
	ModuleID          string `json:"module_id"`
	TopicID           string `json:"topic_id"`
	Title             string `json:"title" validate:"required,max=100"`
	LearningObjective string `json:"learning_objective" validate:"required"`
	Content           string `json:"content"`
	VideoFilename     string `json:"video_filename,omitempty" validate:"omitempty,safepath,max=255"`
	ThumbnailFilename string `json:"thumbnail_filename,omitempty" validate:"omitempty,safepath,max=255"`
	TextbookName      string `json:"textbook_name,omitempty" validate:"omitempty,safepath,max=255"`
	TextbookPages     string `json:"textbook_pages,omitempty"`
	PracticeContent   string `json:"practice_content,omitempty"`
}

// Validate runs validation checks on the Lesson struct using the defined tags.
func (l *Lesson) Validate() error {
	return validatorInstance.Struct(l)
}

// Validate checks the whole course tree, including nested lessons.
func (c *Course) Validate() error {
	if err := validatorInstance.Struct(c); err != nil {
		return err
	}
	for _, m := range c.Modules {
		for _, t := range m.Topics {
			if t.Lesson != nil {
				if err := t.Lesson.Validate(); err != nil {
					return fmt.Errorf("lesson %q: %w", t.Lesson.Title, err)
				}
			}
		}
	}
	return nil
}

// VideoDir is the asset directory holding the lesson's video and thumbnail.
func (l *Lesson) VideoDir() string {
	return path.Join("lesson-videos", fmt.Sprintf("%s-%s-%s", l.CourseID, l.ModuleID, l.TopicID))
}

// VideoPath is the storage path of the lesson video, or "" when it has none.
func (l *Lesson) VideoPath() string {
	if l.VideoFilename == "" {
		return ""
	}
	return path.Join(l.VideoDir(), l.VideoFilename)
}

// ThumbnailPath is the storage path of the video poster, or "" when it has none.
func (l *Lesson) ThumbnailPath() string {
	if l.ThumbnailFilename == "" {
		return ""
	}
	return path.Join(l.VideoDir(), l.ThumbnailFilename)
}

// TextbookDir is the asset directory holding the course textbooks.
func TextbookDir(courseID string) string {
	return path.Join("textbooks", courseID)
}

// TextbookPath is the storage path of the lesson textbook, or "" when it has none.
func (l *Lesson) TextbookPath() string {
	if l.TextbookName == "" {
		return ""
	}
	return path.Join(TextbookDir(l.CourseID), l.TextbookName)
}

// LessonRepository persists courses and their lesson trees.
type LessonRepository interface {
	// CreateCourse stores the course with its modules, topics, lessons and
	// quizzes, assigning IDs to every node that lacks one.
	CreateCourse(ctx context.Context, c *Course) error
	ListCourses(ctx context.Context) ([]Course, error)
	FindCourseByName(ctx context.Context, name string) (*Course, error)
	// CourseTree loads the full tree. Quizzes carry no questions.
	CourseTree(ctx context.Context, courseID string) (*Course, error)
	FindLesson(ctx context.Context, id string) (*Lesson, error)
}
