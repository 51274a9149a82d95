package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// templNode lets a templ component sit inside a gomponents tree.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// Templ wraps component as a gomponents node. gomponents renders without a
// context, so the request context is captured here.
func Templ(ctx context.Context, component templ.Component) g.Node {
	if ctx == nil {
		ctx = context.Background()
	}
	return templNode{ctx: ctx, component: component}
}
