package lessons

import (
	"fmt"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/panel"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// PageID is the element htmx replaces when another tab is picked.
const PageID = "lesson-page"

// MsgQuizUnavailable replaces a quiz whose questions could not be loaded.
const MsgQuizUnavailable = "This quiz is unavailable right now."

// View is everything the lesson page renders.
type View struct {
	Menu *Menu
	// Quizzes holds the loaded quizzes with questions, keyed by quiz id.
	Quizzes map[string]*domain.Quiz
	Policy  *bluemonday.Policy
}

func (v View) pageURL(panelID string) string {
	return fmt.Sprintf("/courses/%s/lessons?panel=%s", v.Menu.Course.ID, url.QueryEscape(panelID))
}

func (v View) sanitized(html string) g.Node {
	return g.Raw(v.Policy.Sanitize(html))
}

// Page renders the side menu and the panels of the course.
func Page(v View) g.Node {
	return h.Div(
		h.ID(PageID),
		h.Class("lesson-page"),
		h.Nav(h.Class("lesson-menu"),
			h.H2(g.Text(v.Menu.Course.Name)),
			g.Map(v.Menu.Modules, func(mm *ModuleMenu) g.Node { return moduleNode(v, mm) }),
		),
		h.Div(h.Class("lesson-panels"),
			g.Map(v.Menu.Navigator.Panels(), func(p panel.Panel) g.Node { return panelNode(v, p) }),
		),
	)
}

// Empty is shown when no course exists yet.
func Empty() g.Node {
	return h.Div(h.ID(PageID), h.P(g.Text("No courses available.")))
}

// toggleURL opens a closed dropdown on its first panel and closes an open
// one while keeping the active panel.
func (v View) toggleURL(d *panel.Dropdown, firstPanel string) string {
	active := v.Menu.Navigator.Active()
	if !d.Expanded || active == "" {
		return v.pageURL(firstPanel)
	}
	return v.pageURL(active) + "&collapse=" + url.QueryEscape(d.ID)
}

func dropdownNode(v View, d *panel.Dropdown, firstPanel string, items g.Node) g.Node {
	return h.Div(
		h.ID(d.ID),
		h.Class("dropdown"),
		h.Button(
			h.Type("button"),
			h.Class("dropdown-toggle"),
			g.If(firstPanel != "", g.Group{
				hx.Get(v.toggleURL(d, firstPanel)),
				hx.Target("#" + PageID),
				hx.Swap("outerHTML"),
				hx.PushURL("true"),
			}),
			g.Text(d.Label),
		),
		h.Div(
			h.Class("dropdown-items"),
			h.Style(fmt.Sprintf("max-height: %dpx", d.MaxHeight)),
			items,
		),
	)
}

func moduleNode(v View, mm *ModuleMenu) g.Node {
	first := ""
	for _, tm := range mm.Topics {
		if len(tm.Panels) > 0 {
			first = tm.Panels[0]
			break
		}
	}
	return dropdownNode(v, mm.Dropdown, first,
		g.Map(mm.Topics, func(tm *TopicMenu) g.Node { return topicNode(v, tm) }),
	)
}

func topicNode(v View, tm *TopicMenu) g.Node {
	first := ""
	if len(tm.Panels) > 0 {
		first = tm.Panels[0]
	}
	return dropdownNode(v, tm.Dropdown, first,
		g.Map(tm.Panels, func(id string) g.Node { return tabNode(v, id) }),
	)
}

func tabNode(v View, panelID string) g.Node {
	class := "tab"
	if v.Menu.Navigator.Active() == panelID {
		class = "tab active"
	}
	return h.A(
		h.Class(class),
		h.Href("#"+panelID),
		hx.Get(v.pageURL(panelID)),
		hx.Target("#"+PageID),
		hx.Swap("outerHTML"),
		hx.PushURL("true"),
		g.Text(v.Menu.Label(panelID)),
	)
}

func panelNode(v View, p panel.Panel) g.Node {
	class := "panel"
	if p.Shown {
		class = "panel active"
	}
	var body g.Node
	switch p.Kind {
	case panel.KindLesson:
		body = lessonBody(v, v.Menu.Lesson(p.ID))
	case panel.KindVideo:
		body = videoBody(v.Menu.Lesson(p.ID), p.Playing)
	case panel.KindTextbook:
		body = textbookBody(v, v.Menu.Lesson(p.ID))
	case panel.KindQuiz:
		body = quizBody(v, v.Menu.Quiz(p.ID))
	}
	return h.Div(h.ID(p.ID), h.Class(class), body)
}

func lessonBody(v View, l *domain.Lesson) g.Node {
	return g.Group{
		h.H2(g.Text(l.Title)),
		h.Div(h.Class("learning-objective"), v.sanitized(l.LearningObjective)),
		g.If(l.Content != "", h.Div(h.Class("lesson-content"), v.sanitized(l.Content))),
		g.If(l.PracticeContent != "", h.Div(h.Class("practice-content"), v.sanitized(l.PracticeContent))),
	}
}

func videoBody(l *domain.Lesson, playing bool) g.Node {
	return g.El("video",
		h.Class("lesson-video"),
		g.Attr("controls"),
		g.Attr("preload", "metadata"),
		g.If(l.ThumbnailFilename != "", g.Attr("poster", "/lessons/"+l.ID+"/thumbnail")),
		g.If(playing, g.Attr("autoplay")),
		g.El("source", h.Src("/lessons/"+l.ID+"/video"), h.Type("video/mp4")),
	)
}

func textbookBody(v View, l *domain.Lesson) g.Node {
	return g.Group{
		g.If(l.TextbookPages != "", h.Div(h.Class("textbook-pages"), v.sanitized(l.TextbookPages))),
		g.If(l.TextbookName != "", h.A(
			h.Href("/lessons/"+l.ID+"/textbook"),
			g.Attr("target", "_blank"),
			g.Textf("Open %s", l.TextbookName),
		)),
	}
}

func quizBody(v View, header *domain.Quiz) g.Node {
	q := v.Quizzes[header.ID]
	if q == nil {
		return g.Group{h.H2(g.Text(header.Title)), h.P(g.Text(MsgQuizUnavailable))}
	}
	resultID := "quiz-result-" + q.ID
	return g.Group{
		h.H2(g.Text(q.Title)),
		h.Form(
			h.Class("quiz-form"),
			hx.Post("/quizzes/"+q.ID+"/submit"),
			hx.Target("#"+resultID),
			hx.Swap("innerHTML"),
			g.Map(q.Questions, func(question domain.Question) g.Node {
				return h.Div(h.Class("quiz-question"),
					h.P(g.Textf("%d. %s", question.Position, question.Text)),
					g.Map(question.Answers, func(a domain.Answer) g.Node {
						return h.Label(
							h.Input(h.Type("radio"), h.Name(question.ID), h.Value(a.ID)),
							g.Text(" "+a.Text),
						)
					}),
				)
			}),
			h.Button(h.Type("submit"), g.Text("Submit")),
		),
		h.Div(h.ID(resultID)),
	}
}
