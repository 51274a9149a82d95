// Package layouts holds the page shell shared by every full page.
package layouts

import (
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/nfrund/learnhub/web/src/templates/partials"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps content in the document shell with navigation and flashes.
// user is nil for visitors.
func Base(title string, user *domain.User, flashes view.FlashData, content ...g.Node) g.Node {
	return g.Group{
		h.Doctype(
			h.HTML(
				h.Lang("en"),
				h.Head(
					h.Meta(h.Charset("utf-8")),
					h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
					h.TitleEl(g.Text(CalculateTitle(title))),
					h.Link(h.Rel("stylesheet"), h.Href("/static/css/learnhub.css")),
					h.Script(h.Src(htmxSrc), h.Defer()),
				),
				h.Body(
					Nav(user),
					h.Main(
						partials.Flash(flashes),
						g.Group(content),
					),
				),
			),
		),
	}
}

// Nav is the top navigation. Signed-in users see the links for their role.
func Nav(user *domain.User) g.Node {
	if user == nil {
		return h.Nav(
			h.A(h.Href("/"), g.Text("Home")),
			h.A(h.Href("/leaderboard/view"), g.Text("Leaderboard")),
			h.A(h.Href("/login"), g.Text("Login")),
			h.A(h.Href("/register"), g.Text("Register")),
		)
	}
	return h.Nav(
		h.A(h.Href("/"), g.Text("Home")),
		h.A(h.Href("/lessons"), g.Text("Lessons")),
		h.A(h.Href("/leaderboard/view"), g.Text("Leaderboard")),
		g.If(user.Role == domain.RoleTeacher, h.A(h.Href("/teacher"), g.Text("Dashboard"))),
		g.If(user.Role == domain.RoleStudent, h.A(h.Href("/profile"), g.Text("Profile"))),
		h.A(h.Href("/logout"), g.Text("Logout")),
	)
}
