package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
)

const userColumns = `id, name, username, email, password_hash, role, grade, age,
	failed_signin_attempts, registration_date, last_login`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var (
		u          domain.User
		registered int64
		lastLogin  sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Grade, &u.Age,
		&u.FailedSignIns, &registered, &lastLogin)
	if err != nil {
		return nil, err
	}
	u.RegisteredAt = time.Unix(registered, 0).UTC()
	u.LastLoginAt = timeFromNull(lastLogin)
	return &u, nil
}

// CreateUser inserts a user. A duplicate email or username yields
// domain.ErrUserAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.write(ctx, "create user", func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Username, u.Email, u.PasswordHash, u.Role, u.Grade, u.Age,
			u.FailedSignIns, u.RegisteredAt.Unix(), unixOrNil(u.LastLoginAt),
		)
		if err != nil && isConstraint(err) {
			return errors.Join(domain.ErrUserAlreadyExists, err)
		}
		return err
	})
}

func (s *Store) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

// FindUserByEmail matches the address case-insensitively.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, "email = ? COLLATE NOCASE", email)
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser(ctx, "username = ?", username)
}

func (s *Store) RecordFailedSignIn(ctx context.Context, id string) (int, error) {
	var count int
	err := s.write(ctx, "record failed sign-in", func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`UPDATE users SET failed_signin_attempts = failed_signin_attempts + 1 WHERE id = ?
			 RETURNING failed_signin_attempts`, id).Scan(&count)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return count, err
}

func (s *Store) RecordSignIn(ctx context.Context, id string, at time.Time) error {
	return s.write(ctx, "record sign-in", func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET failed_signin_attempts = 0, last_login = ? WHERE id = ?`, at.Unix(), id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (s *Store) UnlockUser(ctx context.Context, email string) error {
	return s.write(ctx, "unlock user", func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET failed_signin_attempts = 0 WHERE email = ? COLLATE NOCASE`, email)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY username`, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
