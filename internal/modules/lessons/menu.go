// Package lessons renders a course as a side menu of topics and one visible
// content panel per lesson, video, textbook or quiz.
package lessons

import (
	"strings"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/panel"
)

// Panel id prefixes. The panel id doubles as the URL fragment.
const (
	lessonPrefix   = "lesson-"
	videoPrefix    = "video-"
	textbookPrefix = "textbook-"
	quizPrefix     = "quiz-"
)

// TopicMenu is a topic's dropdown and the panels listed under it.
type TopicMenu struct {
	Topic    domain.Topic
	Dropdown *panel.Dropdown
	Panels   []string
}

// ModuleMenu is a module's dropdown and its topics.
type ModuleMenu struct {
	Module   domain.Module
	Dropdown *panel.Dropdown
	Topics   []*TopicMenu
}

// Menu is the navigable form of a course tree.
type Menu struct {
	Course    *domain.Course
	Modules   []*ModuleMenu
	Navigator *panel.Navigator
	lessons   map[string]*domain.Lesson
	quizzes   map[string]*domain.Quiz
	labels    map[string]string
	dropdowns map[string]*panel.Dropdown
}

// NewMenu builds the dropdowns and panels of c. Nothing is selected until
// Initial or Select is called on the Navigator.
func NewMenu(c *domain.Course) *Menu {
	m := &Menu{
		Course:    c,
		Navigator: panel.NewNavigator(),
		lessons:   make(map[string]*domain.Lesson),
		quizzes:   make(map[string]*domain.Quiz),
		labels:    make(map[string]string),
		dropdowns: make(map[string]*panel.Dropdown),
	}
	for _, mod := range c.Modules {
		mm := &ModuleMenu{Module: mod, Dropdown: panel.NewDropdown("module-"+mod.ID, mod.Name, nil)}
		m.dropdowns[mm.Dropdown.ID] = mm.Dropdown
		for _, t := range mod.Topics {
			tm := &TopicMenu{Topic: t, Dropdown: panel.NewDropdown("topic-"+t.ID, t.Name, mm.Dropdown)}
			m.dropdowns[tm.Dropdown.ID] = tm.Dropdown
			if l := t.Lesson; l != nil {
				m.add(tm, panel.Panel{ID: lessonPrefix + l.ID, Kind: panel.KindLesson}, "Lesson")
				m.lessons[l.ID] = l
				if l.VideoFilename != "" {
					m.add(tm, panel.Panel{ID: videoPrefix + l.ID, Kind: panel.KindVideo}, "Video")
				}
				if l.TextbookName != "" || l.TextbookPages != "" {
					m.add(tm, panel.Panel{ID: textbookPrefix + l.ID, Kind: panel.KindTextbook}, "Textbook")
				}
			}
			if q := t.Quiz; q != nil {
				m.add(tm, panel.Panel{ID: quizPrefix + q.ID, Kind: panel.KindQuiz}, "Quiz")
				m.quizzes[q.ID] = q
			}
			mm.Dropdown.AddItem(panel.ItemHeight)
			mm.Topics = append(mm.Topics, tm)
		}
		m.Modules = append(m.Modules, mm)
	}
	return m
}

func (m *Menu) add(tm *TopicMenu, p panel.Panel, label string) {
	m.Navigator.Add(p, label, tm.Dropdown)
	tm.Dropdown.AddItem(panel.ItemHeight)
	tm.Panels = append(tm.Panels, p.ID)
	m.labels[p.ID] = label
}

// Dropdown returns the module or topic dropdown with the given id, or nil.
func (m *Menu) Dropdown(id string) *panel.Dropdown {
	return m.dropdowns[id]
}

// Label returns the tab label of a panel.
func (m *Menu) Label(panelID string) string {
	return m.labels[panelID]
}

// Lesson returns the lesson shown by a lesson, video or textbook panel.
func (m *Menu) Lesson(panelID string) *domain.Lesson {
	for _, prefix := range []string{lessonPrefix, videoPrefix, textbookPrefix} {
		if id, ok := strings.CutPrefix(panelID, prefix); ok {
			return m.lessons[id]
		}
	}
	return nil
}

// Quiz returns the quiz header shown by a quiz panel.
func (m *Menu) Quiz(panelID string) *domain.Quiz {
	if id, ok := strings.CutPrefix(panelID, quizPrefix); ok {
		return m.quizzes[id]
	}
	return nil
}
