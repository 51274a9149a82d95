package pages

import (
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/form"
	"github.com/nfrund/learnhub/web/src/templates/partials"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	RegisterFormID   = "register-form"
	RegisterSubmitID = "register-submit"
	GradeFieldID     = "grade-field"
)

// RegisterWatch ties the register inputs to their validate endpoint.
var RegisterWatch = partials.Watch{URL: "/register/validate", FormID: RegisterFormID, SubmitID: RegisterSubmitID}

// Register renders the sign-up form from m.
func Register(m *form.Model) g.Node {
	role := domain.ParseRole(m.Value(form.RoleField))
	return h.Div(
		h.Class("auth-page"),
		h.H1(g.Text("Register")),
		h.Form(
			h.ID(RegisterFormID),
			h.Method("post"),
			h.Action("/register"),
			RoleSwitch(role),
			g.Map(m.Fields(), func(f form.Field) g.Node {
				if f.Type == "select" {
					return GradeField(m, f, role)
				}
				return partials.Input(m, f, RegisterWatch)
			}),
			partials.SubmitButton(RegisterSubmitID, "Register", m.SubmitEnabled()),
		),
		h.P(g.Text("Already registered? "), h.A(h.Href("/login"), g.Text("Login"))),
	)
}

// RoleSwitch is the student/teacher toggle.
func RoleSwitch(active domain.Role) g.Node {
	option := func(r domain.Role, label string) g.Node {
		id := "role-" + string(r)
		return g.Group{
			h.Input(
				h.ID(id),
				h.Type("radio"),
				h.Name(form.RoleField),
				h.Value(string(r)),
				g.If(active == r, h.Checked()),
				RegisterWatch.Role(),
			),
			h.Label(h.For(id), g.Text(label)),
		}
	}
	return h.Div(
		h.Class("role-switch"),
		option(domain.RoleStudent, "Student"),
		option(domain.RoleTeacher, "Teacher"),
	)
}

// GradeField is the grade selector, hidden for teachers. The validate
// endpoint swaps it out of band when the role changes.
func GradeField(m *form.Model, f form.Field, role domain.Role, oob ...bool) g.Node {
	msg, _ := m.Error(f.ID)
	selected := m.Value(f.ID)
	return h.Div(
		h.ID(GradeFieldID),
		h.Class("form-field"),
		g.If(role == domain.RoleTeacher, g.Attr("hidden")),
		g.If(len(oob) > 0 && oob[0], hx.SwapOOB("true")),
		h.Label(h.For(f.ID), g.Text(f.Label)),
		h.Select(
			h.ID(f.ID),
			h.Name(f.Name),
			h.Aria("describedby", f.ErrorID),
			RegisterWatch.Field(f.ID),
			h.Option(h.Value(""), g.Text("Select your grade")),
			g.Map(domain.Grades, func(gr domain.Grade) g.Node {
				return h.Option(
					h.Value(string(gr)),
					g.If(string(gr) == selected, h.Selected()),
					g.Text(gr.Label()),
				)
			}),
		),
		partials.ErrorSlot(f.ErrorID, msg, false),
	)
}
