package domain

import (
	"context"
	"time"
)

// Progress tracks a student's points and daily activity streak.
type Progress struct {
	UserID        string     `json:"user_id"`
	Points        int        `json:"points"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActiveOn  *time.Time `json:"last_active_on,omitempty"`
}

// Award adds points earned on the given day and advances the streak.
// Activity on the day after the last active day extends the streak, a second
// activity on the same day leaves it alone, and any longer gap restarts it.
func (p *Progress) Award(points int, at time.Time) {
	p.Points += points

	day := truncateDay(at)
	switch {
	case p.LastActiveOn == nil:
		p.CurrentStreak = 1
	default:
		last := truncateDay(*p.LastActiveOn)
		switch {
		case day.Equal(last):
		case day.Equal(last.AddDate(0, 0, 1)):
			p.CurrentStreak++
		case day.After(last):
			p.CurrentStreak = 1
		default:
			// Out-of-order events never move the streak backwards.
			return
		}
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastActiveOn = &day
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Stats is the summary served by /user_stats.
type Stats struct {
	Streak int `json:"streak"`
	Points int `json:"points"`
}

// Stats summarises the progress record.
func (p *Progress) Stats() Stats {
	return Stats{Streak: p.CurrentStreak, Points: p.Points}
}

// LeaderboardEntry is a single ranked row.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// ProgressRepository persists student progress.
type ProgressRepository interface {
	CreateProgress(ctx context.Context, userID string) error
	// FindProgress returns (nil, nil) when the user has no progress record.
	FindProgress(ctx context.Context, userID string) (*Progress, error)
	SaveProgress(ctx context.Context, p *Progress) error
	// Leaderboard returns students ordered by points (highest first), then username.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
