package dashboard

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Page renders the dashboard tables.
func Page(teacherName string, s Stats) g.Node {
	quizRows := make([]Bucket, 0, len(s.Quizzes)+1)
	quizRows = append(quizRows, Bucket{Label: NotStartedLabel, Count: s.NotStarted})
	for _, q := range s.Quizzes {
		quizRows = append(quizRows, Bucket{Label: "Finished " + q.Title, Count: q.Finished})
	}

	return h.Div(
		h.Class("dashboard"),
		h.H1(g.Textf("Welcome, %s", teacherName)),
		h.P(g.Textf("%d students enrolled.", s.Students)),
		table("grade-table", "Class Grades", "Grade", s.Grades),
		table("active-table", "Last Login", "Active", s.Activity),
		table("quiz-table", "Quiz Progress", "Quiz Progress", quizRows),
	)
}

func table(id, title, heading string, rows []Bucket) g.Node {
	return h.Div(
		h.ID(id),
		h.Class("dashboard-chart"),
		h.H2(g.Text(title)),
		h.Table(
			h.THead(h.Tr(h.Th(g.Text(heading)), h.Th(g.Text("Number of Students")))),
			h.TBody(g.Map(rows, func(b Bucket) g.Node {
				return h.Tr(h.Td(g.Text(b.Label)), h.Td(g.Text(strconv.Itoa(b.Count))))
			})),
		),
	)
}
