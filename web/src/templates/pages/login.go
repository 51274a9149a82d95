package pages

import (
	"github.com/nfrund/learnhub/internal/form"
	"github.com/nfrund/learnhub/web/src/templates/partials"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	LoginFormID   = "login-form"
	LoginSubmitID = "login-submit"
)

// LoginWatch ties the login inputs to their validate endpoint.
var LoginWatch = partials.Watch{URL: "/login/validate", FormID: LoginFormID, SubmitID: LoginSubmitID}

// Login renders the sign-in form from m.
func Login(m *form.Model) g.Node {
	return h.Div(
		h.Class("auth-page"),
		h.H1(g.Text("Login")),
		h.Form(
			h.ID(LoginFormID),
			h.Method("post"),
			h.Action("/login"),
			g.Map(m.Fields(), func(f form.Field) g.Node {
				return partials.Input(m, f, LoginWatch)
			}),
			h.Div(
				h.Class("form-field"),
				h.Input(h.ID("form-remember"), h.Type("checkbox"), h.Name("remember"), h.Value("true")),
				h.Label(h.For("form-remember"), g.Text("Remember me")),
			),
			partials.SubmitButton(LoginSubmitID, "Login", m.SubmitEnabled()),
		),
		h.P(g.Text("No account yet? "), h.A(h.Href("/register"), g.Text("Register"))),
	)
}
