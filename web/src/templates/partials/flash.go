// Package partials holds fragments shared between pages.
package partials

import (
	"github.com/nfrund/learnhub/internal/view"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Flash renders the flash messages consumed for this page.
func Flash(flashes view.FlashData) g.Node {
	return h.Div(
		h.ID("flash-messages"),
		g.Map(flashes.Success, func(msg string) g.Node {
			return h.P(h.Class("flash-success"), g.Attr("role", "status"), g.Text(msg))
		}),
		g.Map(flashes.Error, func(msg string) g.Node {
			return h.P(h.Class("flash-error"), g.Attr("role", "alert"), g.Text(msg))
		}),
	)
}
