package quizzes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/rendering"
	"github.com/nfrund/learnhub/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	e       *echo.Echo
	store   domain.Store
	student testutils.TestUser
	quiz    *domain.Quiz
}

// setup mounts the handler behind a middleware that signs the student in.
func setup(t *testing.T) fixture {
	t.Helper()
	store := testutils.NewStore(t)
	student := testutils.CreateUser(t, store, "ada", domain.RoleStudent)

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	testutils.UseSessions(e)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserContextKey, &student.User)
			return next(c)
		}
	})

	h := NewHandler(NewService(store, nil))
	e.GET("/quizzes", h.List)
	e.GET("/quizzes/scores", h.Scores)
	e.GET("/quizzes/:id", h.Get)
	e.POST("/quizzes/:id/submit", h.Submit)

	return fixture{e: e, store: store, student: student, quiz: createQuiz(t, store, "Arithmetic")}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListScores(t *testing.T) {
	f := setup(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/quizzes?user_assigned=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	_, err := NewService(f.store, nil).Submit(t.Context(), f.student.ID, f.quiz.ID, correctAnswers(f.quiz))
	require.NoError(t, err)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/quizzes?user_assigned=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"title":"Arithmetic","score":2,"result":"2/2"}]`, rec.Body.String())
}

func TestHandler_ListCatalogue(t *testing.T) {
	f := setup(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/quizzes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Quiz
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Arithmetic", got[0].Title)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/quizzes?user_assigned=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Scores(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/quizzes/scores", nil)
	req.Header.Set("HX-Request", "true")
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>No quiz scores available.</p>", rec.Body.String())

	rec = f.do(httptest.NewRequest(http.MethodGet, "/quizzes/scores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, `<div id="quiz-scores"><p>No quiz scores available.</p></div>`)
}

func TestHandler_GetHidesCorrectAnswers(t *testing.T) {
	f := setup(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/quizzes/"+f.quiz.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correct")
	assert.Contains(t, rec.Body.String(), "3 x 3")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/quizzes/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())
}

func TestHandler_SubmitJSON(t *testing.T) {
	f := setup(t)

	body, err := json.Marshal(SubmitRequest{Answers: correctAnswers(f.quiz)})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID+"/submit", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Score)
	assert.Equal(t, "2/2", got.Result)
	assert.Equal(t, 100, got.Percent)

	req = httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID+"/submit", strings.NewReader(`{"answers":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SubmitForm(t *testing.T) {
	f := setup(t)

	form := url.Values{}
	for qid, aid := range correctAnswers(f.quiz) {
		form.Set(qid, aid)
	}
	req := httptest.NewRequest(http.MethodPost, "/quizzes/"+f.quiz.ID+"/submit", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("HX-Request", "true")
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You scored 2/2 (100%).")

	req = httptest.NewRequest(http.MethodPost, "/quizzes/missing/submit", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec = f.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
