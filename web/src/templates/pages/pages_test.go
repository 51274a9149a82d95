package pages

import (
	"bytes"
	"io/fs"
	"testing"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/form"
	"github.com/nfrund/learnhub/web"
	"github.com/nfrund/learnhub/web/src/templates/partials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestFeatureCards_Toggle(t *testing.T) {
	collapsed := render(t, FeatureCards(false))
	assert.Contains(t, collapsed, "Show More")
	assert.Contains(t, collapsed, `hx-get="/features?expanded=true"`)
	assert.NotContains(t, collapsed, "show-description")

	expanded := render(t, FeatureCards(true))
	assert.Contains(t, expanded, "Show Less")
	assert.Contains(t, expanded, `hx-get="/features?expanded=false"`)
	assert.Contains(t, expanded, `class="feature-card show-description"`)
}

func TestRegister_HidesGradeForTeachers(t *testing.T) {
	m := form.NewModel(form.RegisterFields)
	m.SetValue(form.RoleField, "teacher")
	m.SetValue("form-name", "Ms Frizzle")
	m.SetValue("form-pass", "Secret#123")

	out := render(t, Register(m))
	assert.Contains(t, out, `id="grade-field"`)
	assert.Contains(t, out, `hidden`)
	assert.Contains(t, out, `value="Ms Frizzle"`)
	assert.NotContains(t, out, "Secret#123")
	assert.Contains(t, out, `<button id="register-submit" type="submit" disabled>`)
}

func TestRegister_ShowsFieldError(t *testing.T) {
	m := form.NewModel(form.RegisterFields)
	form.Present(m, form.RegisterErrors, "The emails do not match!")

	out := render(t, Register(m))
	assert.Contains(t, out, `<div id="err-confirm-email" class="error-message">The emails do not match!</div>`)
	// The highlight follows the slot, so the input carries no state of its own.
	assert.Contains(t, out, `aria-describedby="err-confirm-email"`)
	assert.NotContains(t, out, "input-error")
}

func TestRegister_GradeError(t *testing.T) {
	m := form.NewModel(form.RegisterFields)
	m.SetValue(form.RoleField, string(domain.RoleStudent))
	form.Present(m, form.RegisterErrors, "You must select a grade.")

	out := render(t, Register(m))
	assert.Contains(t, out, `<div id="err-grade" class="error-message">You must select a grade.</div>`)
	assert.Contains(t, out, `<select id="form-grade" name="grade" aria-describedby="err-grade"`)
}

func TestStylesheet_HighlightsInvalidFields(t *testing.T) {
	css, err := fs.ReadFile(web.FS, "static/css/learnhub.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), partials.InvalidSelector+" :is(input, select)")
}

func TestLogin_RestoresEmail(t *testing.T) {
	m := form.NewModel(form.LoginFields)
	m.SetValue("form-email", "ada@example.com")

	out := render(t, Login(m))
	assert.Contains(t, out, `value="ada@example.com"`)
	assert.Contains(t, out, `name="remember"`)
}

func TestProfile(t *testing.T) {
	u := &domain.User{
		Name:         "Ada Lovelace",
		Username:     "ada",
		Email:        "ada@example.com",
		Role:         domain.RoleStudent,
		Grade:        domain.GradeNinth,
		Age:          14,
		RegisteredAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	out := render(t, Profile(u, domain.Stats{Streak: 3, Points: 40}))
	assert.Contains(t, out, "9th Grade")
	assert.Contains(t, out, "Student")
	assert.Contains(t, out, `<span id="points">40</span>`)
	assert.Contains(t, out, `hx-get="/quizzes/scores"`)
}
