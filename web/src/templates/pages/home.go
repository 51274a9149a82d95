package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Feature is one card on the home page.
type Feature struct {
	Title       string
	Description string
}

// Features are the cards shown to every visitor.
var Features = []Feature{
	{"Video Lessons", "Watch short lessons for every topic and pick up where you left off."},
	{"Textbook Readings", "Each lesson points you at the exact chapter and pages to read."},
	{"Quizzes", "Check your understanding with a quiz at the end of each topic."},
	{"Leaderboard", "Earn points for every quiz you finish and climb the rankings."},
	{"Daily Streaks", "Come back every day to keep your streak going."},
	{"Teacher Dashboard", "Teachers see grades, activity and quiz progress at a glance."},
}

// Home is the landing page.
func Home() g.Node {
	return h.Div(
		h.Class("home"),
		h.H1(g.Text("Welcome to LearnHub")),
		h.P(g.Text("Lessons, textbooks and quizzes for students, with progress tracking for teachers.")),
		FeatureCards(false),
	)
}

// FeatureCards renders the card grid. expanded shows every description;
// the toggle button swaps the whole grid for its opposite state.
func FeatureCards(expanded bool) g.Node {
	label, next := "Show More", "true"
	if expanded {
		label, next = "Show Less", "false"
	}
	return h.Div(
		h.ID("features"),
		h.Div(
			h.Class("feature-cards"),
			g.Map(Features, func(f Feature) g.Node {
				class := "feature-card"
				if expanded {
					class += " show-description"
				}
				return h.Div(
					h.Class(class),
					h.H2(g.Text(f.Title)),
					h.P(g.Text(f.Description)),
				)
			}),
		),
		h.Button(
			h.ID("toggle-features"),
			h.Type("button"),
			hx.Get("/features?expanded="+next),
			hx.Target("#features"),
			hx.Swap("outerHTML"),
			g.Text(label),
		),
	)
}
