// Package leaderboard ranks students by points and renders the ranking in
// pages of eight rows.
package leaderboard

import (
	"context"
	"errors"
	"sync"

	"github.com/nfrund/learnhub/internal/domain"
)

// PageSize is the number of rows on one page.
const PageSize = 8

// ErrStale is returned by Load when a newer load started while this one
// was waiting for its response. The board keeps the newer data.
var ErrStale = errors.New("leaderboard: stale response dropped")

// Fetcher returns the full ranking, highest points first.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]domain.LeaderboardEntry, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]domain.LeaderboardEntry, error) { return f(ctx) }

// RepositoryFetcher reads the ranking straight from the store.
func RepositoryFetcher(repo domain.ProgressRepository) Fetcher {
	return FetcherFunc(func(ctx context.Context) ([]domain.LeaderboardEntry, error) {
		return repo.Leaderboard(ctx, 0)
	})
}

// Row is one rendered line of the table.
type Row struct {
	Rank     int
	Username string
	Points   int
}

// Board holds the last applied ranking and the current page. It is safe
// for concurrent use.
type Board struct {
	mu      sync.Mutex
	entries []domain.LeaderboardEntry
	page    int
	latest  uint64
	err     error
}

// NewBoard returns an empty board on page 1.
func NewBoard() *Board {
	return &Board{page: 1}
}

// Load fetches the ranking and applies it unless another Load started in
// the meantime. A failed fetch is remembered so the table can show it.
func (b *Board) Load(ctx context.Context, f Fetcher) error {
	b.mu.Lock()
	b.latest++
	seq := b.latest
	b.mu.Unlock()

	entries, err := f.Fetch(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.latest {
		return ErrStale
	}
	if err != nil {
		b.err = err
		return err
	}
	b.entries, b.err = entries, nil
	if b.page > b.pages() {
		b.page = b.pages()
	}
	return nil
}

// pages is the page count; an empty board still has one page.
func (b *Board) pages() int {
	n := (len(b.entries) + PageSize - 1) / PageSize
	return max(n, 1)
}

// Page returns the current page, starting at 1.
func (b *Board) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Pages returns the number of pages.
func (b *Board) Pages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pages()
}

// SetPage moves to page n, clamped to the available pages.
func (b *Board) SetPage(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = min(max(n, 1), b.pages())
	return b.page
}

// NextPage advances one page and reports whether it moved.
func (b *Board) NextPage() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.page >= b.pages() {
		return false
	}
	b.page++
	return true
}

// Err returns the error of the last applied fetch.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Rows returns the current page. Ranks continue across pages and follow
// the order of the fetched ranking.
func (b *Board) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := (b.page - 1) * PageSize
	if start >= len(b.entries) {
		return nil
	}
	end := min(start+PageSize, len(b.entries))

	rows := make([]Row, 0, end-start)
	for i, e := range b.entries[start:end] {
		rows = append(rows, Row{Rank: start + i + 1, Username: e.Username, Points: e.Points})
	}
	return rows
}
