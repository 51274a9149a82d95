// Package seed loads the starter Pre-Algebra course.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/storage"
)

// CourseName is the name of the seeded course.
const CourseName = "Pre-Algebra"

const (
	objectives = "<ul><li>Understand and Identify Factors</li><li>Apply factorization in real world contexts</li>" +
		"<li>Utilize factors to Simplify Fractions</li><li>Explore and apply prime factorization</li></ul>"
	readings = "<ul><li>Chapter 3 - Read Pages 44 to 66</li><li>Complete Exercises 1-10</li></ul>"
	practice = "<p>Work through the practice set before taking the quiz. Practice questions are not marked.</p>"
)

// Course returns the starter course tree without IDs.
func Course() *domain.Course {
	return &domain.Course{
		Name:    CourseName,
		Subject: domain.SubjectMath,
		Modules: []domain.Module{
			{
				Name: "Factors & Multiples",
				Topics: []domain.Topic{
					{
						Name: "Factors & Multiples",
						Lesson: &domain.Lesson{
							Title:             "Factors & Multiples",
							LearningObjective: objectives,
							VideoFilename:     "video.mp4",
							ThumbnailFilename: "thumbnail.png",
							TextbookName:      "sample.pdf",
							TextbookPages:     readings,
							PracticeContent:   practice,
						},
						Quiz: &domain.Quiz{
							Title: "Factors & Multiples Quiz",
							Questions: []domain.Question{
								question("Which number is a factor of 12?", 1, "5", "4", "7", "9"),
								question("What is the least common multiple of 4 and 6?", 2, "24", "10", "12", "2"),
								question("Which of these is a multiple of 7?", 0, "21", "17", "27", "71"),
							},
						},
					},
					{
						Name: "Prime & Composite Numbers",
						Lesson: &domain.Lesson{
							Title:             "Prime & Composite Numbers",
							LearningObjective: objectives,
							Content: "<p>A prime number has exactly two factors: 1 and itself. " +
								"A composite number has more than two factors.</p>",
							TextbookName:    "sample.pdf",
							TextbookPages:   readings,
							PracticeContent: practice,
						},
						Quiz: &domain.Quiz{
							Title: "Prime & Composite Quiz",
							Questions: []domain.Question{
								question("Which number is prime?", 2, "9", "15", "13", "21"),
								question("Which number is composite?", 3, "2", "3", "5", "8"),
							},
						},
					},
					{
						Name: "Prime Factorization",
						Lesson: &domain.Lesson{
							Title:             "Prime Factorization",
							LearningObjective: objectives,
							VideoFilename:     "video.mp4",
							ThumbnailFilename: "thumbnail.png",
							TextbookName:      "sample.pdf",
							TextbookPages:     readings,
							PracticeContent:   practice,
						},
					},
				},
			},
			{Name: "Patterns"},
			{Name: "Ratios and Rates"},
			{Name: "Percentages"},
			{Name: "Exponents Intro & Order of Operations"},
			{Name: "Variables & Expressions"},
			{Name: "Equations & Inequalities"},
			{Name: "Proportional Relationships"},
		},
	}
}

func question(text string, correct int, answers ...string) domain.Question {
	q := domain.Question{Text: text}
	for i, a := range answers {
		q.Answers = append(q.Answers, domain.Answer{Text: a, Correct: i == correct})
	}
	return q
}

// Seed stores the starter course unless a course with its name exists, and
// creates the asset directories its lessons read from. It reports whether
// the course was created.
func Seed(ctx context.Context, lessons domain.LessonRepository, assets storage.Store) (*domain.Course, bool, error) {
	existing, err := lessons.FindCourseByName(ctx, CourseName)
	if err != nil {
		return nil, false, fmt.Errorf("find course: %w", err)
	}
	if existing != nil {
		slog.Info("Course already exists, skipping seed", "course", CourseName, "id", existing.ID)
		return existing, false, nil
	}

	c := Course()
	if err := lessons.CreateCourse(ctx, c); err != nil {
		return nil, false, fmt.Errorf("create course: %w", err)
	}

	if err := assets.MkdirAll(ctx, domain.TextbookDir(c.ID)); err != nil {
		return nil, false, fmt.Errorf("create textbook dir: %w", err)
	}
	for _, m := range c.Modules {
		for _, t := range m.Topics {
			if t.Lesson == nil || t.Lesson.VideoFilename == "" {
				continue
			}
			if err := assets.MkdirAll(ctx, t.Lesson.VideoDir()); err != nil {
				return nil, false, fmt.Errorf("create video dir: %w", err)
			}
		}
	}
	slog.Info("Course seeded", "course", CourseName, "id", c.ID)
	return c, true, nil
}
