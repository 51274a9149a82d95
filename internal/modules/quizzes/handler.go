package quizzes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/view"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Handler serves quiz scores, quizzes and submissions. Every route needs a
// signed-in user.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListRequest selects between the catalogue and the user's own scores.
type ListRequest struct {
	UserAssigned bool `query:"user_assigned"`
}

// SubmitRequest carries the chosen answer id per question id.
type SubmitRequest struct {
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

// SubmitResponse is the graded attempt.
type SubmitResponse struct {
	AttemptID string `json:"attempt_id"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Result    string `json:"result"`
	Percent   int    `json:"percent"`
}

// List returns the user's scores as [{title, score}] for
// ?user_assigned=true and the quiz catalogue otherwise.
func (hd *Handler) List(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_assigned must be true or false")
	}
	ctx := c.Request().Context()
	user, _ := middleware.UserFromContext(c)

	if req.UserAssigned {
		scores, err := hd.service.Scores(ctx, user.ID)
		if err != nil {
			middleware.FromContext(ctx).Error("Failed to load quiz scores", "user_id", user.ID, "error", err)
			return handlers.JSONError(c, http.StatusInternalServerError, "scores_unavailable", MsgLoadFailed)
		}
		return c.JSON(http.StatusOK, scores)
	}

	quizzes, err := hd.service.Catalogue(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to list quizzes", "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "quizzes_unavailable", "Error loading quizzes.")
	}
	return c.JSON(http.StatusOK, quizzes)
}

// Scores renders the user's score list. htmx requests get the bare list;
// anything else gets it inside the full page.
func (hd *Handler) Scores(c echo.Context) error {
	ctx := c.Request().Context()
	user, _ := middleware.UserFromContext(c)

	scores, err := hd.service.Scores(ctx, user.ID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load quiz scores", "user_id", user.ID, "error", err)
	}
	list := view.Templ(ctx, ScoreList(scores, err))

	if handlers.IsHTMX(c) {
		return c.Render(http.StatusOK, "", list)
	}
	return handlers.RenderPage(c, "Quiz Scores", view.GetFlashData(c),
		h.Div(h.Class("container"),
			h.H1(g.Text("Quiz Scores")),
			h.Div(h.ID("quiz-scores"), list),
		),
	)
}

// Get returns a quiz with its questions. Correct answers are never sent.
func (hd *Handler) Get(c echo.Context) error {
	q, err := hd.service.Quiz(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return handlers.JSONError(c, http.StatusNotFound, "", "Not found")
	}
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to load quiz", "quiz_id", c.Param("id"), "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "", "Error loading quiz.")
	}
	return c.JSON(http.StatusOK, q)
}

// Submit grades a submission. JSON bodies carry {"answers": {...}}; forms
// post one field per question named after its id. htmx requests get the
// result as HTML.
func (hd *Handler) Submit(c echo.Context) error {
	req, err := bindSubmit(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, _ := middleware.UserFromContext(c)
	attempt, err := hd.service.Submit(ctx, user.ID, c.Param("id"), req.Answers)
	if errors.Is(err, domain.ErrNotFound) {
		return handlers.JSONError(c, http.StatusNotFound, "", "Not found")
	}
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to submit quiz", "quiz_id", c.Param("id"), "error", err)
		return handlers.JSONError(c, http.StatusInternalServerError, "", "Error submitting quiz.")
	}

	if handlers.IsHTMX(c) {
		return c.Render(http.StatusOK, "", Result(*attempt))
	}
	return c.JSON(http.StatusOK, SubmitResponse{
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		Total:     attempt.Total,
		Result:    attempt.Result(),
		Percent:   attempt.Percent(),
	})
}

func bindSubmit(c echo.Context) (SubmitRequest, error) {
	var req SubmitRequest
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := c.Bind(&req); err != nil {
			return req, echo.NewHTTPError(http.StatusBadRequest, "invalid submission")
		}
		return req, nil
	}

	params, err := c.FormParams()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid submission")
	}
	req.Answers = make(map[string]string, len(params))
	for name, values := range params {
		if len(values) > 0 && values[0] != "" {
			req.Answers[name] = values[0]
		}
	}
	return req, nil
}

// Result is the feedback shown after a submission.
func Result(a domain.Attempt) g.Node {
	return h.Div(h.Class("quiz-result"),
		h.P(g.Textf("You scored %s (%d%%).", a.Result(), a.Percent())),
		h.P(g.Textf("%d points added to your total.", a.Score)),
	)
}
