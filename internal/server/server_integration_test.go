package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/learnhub/internal/app"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/modules/quizzes"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/seed"
	"github.com/nfrund/learnhub/internal/server"
	"github.com/nfrund/learnhub/internal/storage"
	"github.com/nfrund/learnhub/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupIntegrationTest builds the full server, with every module booted,
// over an in-memory store holding the seeded course.
func setupIntegrationTest(t *testing.T) (*httptest.Server, domain.Store, *domain.Course) {
	t.Helper()

	cfg := testutils.ConfigForTests(t)
	store := testutils.NewStore(t)
	bus := pubsub.NewWatermillBridge()
	assets := storage.NewAferoStore(afero.NewMemMapFs())

	course, _, err := seed.Seed(t.Context(), store, assets)
	require.NoError(t, err)

	s, err := server.New(server.Dependencies{Config: cfg, Store: store, Bus: bus, Assets: assets})
	require.NoError(t, err)
	s.Use(app.NewModules(app.Dependencies{Store: store, Publisher: bus, Subscriber: bus, Assets: assets})...)
	s.RegisterRoutes()
	require.NoError(t, s.Boot(t.Context()))

	ts := httptest.NewServer(s.E)
	t.Cleanup(func() {
		ts.Close()
		_ = s.Shutdown(t.Context())
	})
	return ts, store, course
}

// newClient keeps cookies like a browser but does not follow redirects, so
// they can be inspected.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestServer_Basics(t *testing.T) {
	ts, _, _ := setupIntegrationTest(t)
	client := newClient(t)

	res, err := client.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK", readBody(t, res))

	res, err = client.Get(ts.URL + "/static/css/learnhub.css")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	res, err = client.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))
	assert.Contains(t, readBody(t, res), `id="features"`)

	res, err = client.Get(ts.URL + "/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	res.Body.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/no-such-page", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	res, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, readBody(t, res), "404 Not Found")
}

func TestServer_StudentJourney(t *testing.T) {
	ts, store, course := setupIntegrationTest(t)
	client := newClient(t)

	post := func(path string, form url.Values) *http.Response {
		res, err := client.PostForm(ts.URL+path, form)
		require.NoError(t, err)
		return res
	}
	getJSON := func(path string, out any) {
		res, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode, path)
		require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), out))
	}

	t.Run("register", func(t *testing.T) {
		res := post("/register", url.Values{
			"role":             {"student"},
			"name":             {"Ada Lovelace"},
			"username":         {"ada"},
			"date_of_birth":    {"2010-12-10"},
			"email":            {"ada@example.com"},
			"confirm_email":    {"ada@example.com"},
			"password":         {testutils.DefaultPassword},
			"confirm_password": {testutils.DefaultPassword},
			"grade":            {"NINTH"},
		})
		res.Body.Close()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
	})

	t.Run("login", func(t *testing.T) {
		res := post("/login", url.Values{"email": {"ada@example.com"}, "password": {testutils.DefaultPassword}})
		res.Body.Close()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/profile", res.Header.Get("Location"))

		res, err := client.Get(ts.URL + "/profile")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		body := readBody(t, res)
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "Successfully logged in! Redirecting to dashboard...")
	})

	t.Run("lessons", func(t *testing.T) {
		res, err := client.Get(ts.URL + "/lessons")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		body := readBody(t, res)
		assert.Contains(t, body, seed.CourseName)
		assert.Contains(t, body, "Factors &amp; Multiples Quiz")
	})

	t.Run("quiz submission awards points", func(t *testing.T) {
		quizID := course.Modules[0].Topics[0].Quiz.ID
		full, err := store.FindQuiz(t.Context(), quizID)
		require.NoError(t, err)
		answers := map[string]string{}
		for _, q := range full.Questions {
			for _, a := range q.Answers {
				if a.Correct {
					answers[q.ID] = a.ID
				}
			}
		}
		body, err := json.Marshal(quizzes.SubmitRequest{Answers: answers})
		require.NoError(t, err)

		res, err := client.Post(ts.URL+"/quizzes/"+quizID+"/submit", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var result quizzes.SubmitResponse
		require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), &result))
		assert.Equal(t, "3/3", result.Result)

		require.Eventually(t, func() bool {
			var stats domain.Stats
			getJSON("/user_stats", &stats)
			return stats.Points == 3
		}, 2*time.Second, 20*time.Millisecond)

		var scores []domain.QuizScore
		getJSON("/quizzes?user_assigned=true", &scores)
		assert.Equal(t, []domain.QuizScore{{Title: "Factors & Multiples Quiz", Score: 3, Result: "3/3"}}, scores)

		var board []domain.LeaderboardEntry
		getJSON("/leaderboard", &board)
		assert.Equal(t, []domain.LeaderboardEntry{{Username: "ada", Points: 3}}, board)
	})

	t.Run("students cannot open the dashboard", func(t *testing.T) {
		res, err := client.Get(ts.URL + "/teacher/stats")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("logout", func(t *testing.T) {
		res, err := client.Get(ts.URL + "/logout")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)

		res, err = client.Get(ts.URL + "/profile")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	})
}

func TestServer_TeacherDashboard(t *testing.T) {
	ts, store, _ := setupIntegrationTest(t)
	testutils.CreateUser(t, store, "mrs-t", domain.RoleTeacher)
	client := newClient(t)

	res, err := client.PostForm(ts.URL+"/login", url.Values{"email": {"mrs-t@example.com"}, "password": {testutils.DefaultPassword}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "/teacher", res.Header.Get("Location"))

	res, err = client.Get(ts.URL + "/teacher")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.True(t, strings.Contains(body, "Finished Factors &amp; Multiples Quiz"), body)
}
