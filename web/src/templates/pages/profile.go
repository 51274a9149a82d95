package pages

import (
	"strconv"

	"github.com/nfrund/learnhub/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

var titleCase = cases.Title(language.English)

// Profile shows the student's details and stats. Quiz scores load into
// their container after the page arrives.
func Profile(user *domain.User, stats domain.Stats) g.Node {
	return h.Div(
		h.Class("profile"),
		h.H1(g.Text(user.Name)),
		h.Table(
			h.Class("profile-details"),
			h.TBody(
				detailRow("Username", user.Username),
				detailRow("Email", user.Email),
				detailRow("Role", titleCase.String(string(user.Role))),
				g.If(user.Role == domain.RoleStudent, detailRow("Grade", user.Grade.Label())),
				detailRow("Age", strconv.Itoa(user.Age)),
				detailRow("Member since", user.RegisteredAt.Format("January 2, 2006")),
			),
		),
		h.Div(
			h.ID("user-stats"),
			h.P(h.Strong(g.Text("Points: ")), h.Span(h.ID("points"), g.Text(strconv.Itoa(stats.Points)))),
			h.P(h.Strong(g.Text("Streak: ")), h.Span(h.ID("streak"), g.Textf("%d days", stats.Streak))),
		),
		h.H2(g.Text("Quiz Scores")),
		h.Div(
			h.ID("quiz-scores"),
			hx.Get("/quizzes/scores"),
			hx.Trigger("load"),
			hx.Swap("innerHTML"),
			h.P(g.Text("Loading quiz scores...")),
		),
	)
}

func detailRow(label, value string) g.Node {
	return h.Tr(h.Th(g.Text(label)), h.Td(g.Text(value)))
}
