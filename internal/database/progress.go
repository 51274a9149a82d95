package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nfrund/learnhub/internal/domain"
)

func (s *Store) CreateProgress(ctx context.Context, userID string) error {
	return s.write(ctx, "create progress", func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO progress (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`, userID)
		return err
	})
}

func (s *Store) FindProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	var (
		p          = domain.Progress{UserID: userID}
		lastActive sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT points, current_streak, longest_streak, last_active_on FROM progress WHERE user_id = ?`, userID,
	).Scan(&p.Points, &p.CurrentStreak, &p.LongestStreak, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	p.LastActiveOn = timeFromNull(lastActive)
	return &p, nil
}

// SaveProgress upserts the progress record.
func (s *Store) SaveProgress(ctx context.Context, p *domain.Progress) error {
	return s.write(ctx, "save progress", func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO progress (user_id, points, current_streak, longest_streak, last_active_on)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET
				points = excluded.points,
				current_streak = excluded.current_streak,
				longest_streak = excluded.longest_streak,
				last_active_on = excluded.last_active_on`,
			p.UserID, p.Points, p.CurrentStreak, p.LongestStreak, unixOrNil(p.LastActiveOn))
		return err
	})
}

// Leaderboard ranks students by points. limit <= 0 returns everyone.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, COALESCE(p.points, 0) AS points
		 FROM users u LEFT JOIN progress p ON p.user_id = u.id
		 WHERE u.role = ?
		 ORDER BY points DESC, u.username ASC
		 LIMIT ?`, domain.RoleStudent, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Points); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
