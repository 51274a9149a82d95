package quizzes

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/learnhub/internal/domain"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Messages shown instead of the list.
const (
	MsgNoScores   = "No quiz scores available."
	MsgLoadFailed = "Error loading quiz scores."
)

// ScoreList renders scores as quiz-score items. A non-nil err renders the
// failure message and an empty list renders the placeholder.
func ScoreList(scores []domain.QuizScore, err error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return scoreNodes(scores, err).Render(w)
	})
}

func scoreNodes(scores []domain.QuizScore, err error) g.Node {
	switch {
	case err != nil:
		return h.P(g.Text(MsgLoadFailed))
	case len(scores) == 0:
		return h.P(g.Text(MsgNoScores))
	}
	return g.Map(scores, func(s domain.QuizScore) g.Node {
		return h.Div(h.Class("quiz-score-item"), h.Strong(g.Text(s.Title)), g.Textf(": %d points", s.Score))
	})
}
