package leaderboard

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// MsgLoadFailed replaces the rows when the ranking could not be loaded.
const MsgLoadFailed = "Error loading leaderboard."

// RowNode renders one ranked row.
func RowNode(r Row) g.Node {
	rank := strconv.Itoa(r.Rank)
	return h.Tr(
		h.Class("table-entry"),
		h.ID("rank-"+rank),
		h.Td(h.Class("entry-ranking"), g.Text(rank)),
		h.Td(h.Class("entry-username"), g.Text(r.Username)),
		h.Td(h.Class("entry-points"), g.Text(strconv.Itoa(r.Points))),
	)
}

// Body renders the rows of the board's current page, or the failure message.
func Body(b *Board) g.Node {
	if b.Err() != nil {
		return h.TBody(
			h.ID("table-body"),
			h.Tr(h.Td(g.Attr("colspan", "3"), g.Text(MsgLoadFailed))),
		)
	}
	return h.TBody(
		h.ID("table-body"),
		g.Map(b.Rows(), RowNode),
	)
}

// Pager renders the page controls. They fetch the neighbouring page and
// replace the table body and the pager itself.
func Pager(b *Board) g.Node {
	page := b.Page()
	link := func(label string, target int, enabled bool) g.Node {
		return h.Button(
			h.Type("button"),
			g.If(!enabled, h.Disabled()),
			g.If(enabled, g.Group{
				hx.Get("/leaderboard/rows?page=" + strconv.Itoa(target)),
				hx.Target("#leaderboard"),
				hx.Swap("outerHTML"),
			}),
			g.Text(label),
		)
	}
	return h.Div(
		h.Class("pager"),
		link("Previous", page-1, page > 1),
		h.Span(g.Textf("Page %d of %d", page, b.Pages())),
		link("Next", page+1, page < b.Pages()),
	)
}

// Table is the swappable leaderboard block.
func Table(b *Board) g.Node {
	return h.Div(
		h.ID("leaderboard"),
		h.Table(
			h.Class("leaderboard-table"),
			h.THead(h.Tr(h.Th(g.Text("Rank")), h.Th(g.Text("Username")), h.Th(g.Text("Points")))),
			Body(b),
		),
		Pager(b),
	)
}

// Page is the leaderboard page content.
func Page(b *Board) g.Node {
	return h.Div(
		h.Class("leaderboard-page"),
		h.H1(g.Text("Leaderboard")),
		Table(b),
	)
}
