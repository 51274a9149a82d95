// Package surreal is the SurrealDB backed implementation of domain.Store.
package surreal

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/learnhub/internal/database"
	"github.com/nfrund/learnhub/internal/domain"
)

// Store implements domain.Store on SurrealDB.
type Store struct {
	exec     Executor
	timeouts database.Timeouts
	closer   func() error
}

var _ domain.Store = (*Store)(nil)

const schema = `
DEFINE INDEX IF NOT EXISTS user_email ON TABLE user FIELDS email UNIQUE;
DEFINE INDEX IF NOT EXISTS user_username ON TABLE user FIELDS username UNIQUE;
DEFINE INDEX IF NOT EXISTS attempt_user ON TABLE attempt FIELDS user_id;
`

// New wraps exec and defines the indexes the store relies on. closer, if
// non-nil, is called by Close.
func New(ctx context.Context, exec Executor, timeouts database.Timeouts, closer func() error) (*Store, error) {
	s := &Store{exec: exec, timeouts: timeouts, closer: closer}
	ctx, cancel := timeouts.ExecuteContext(ctx)
	defer cancel()
	if err := exec.Execute(ctx, schema, nil); err != nil {
		return nil, database.WrapError(err, "define indexes")
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *Store) query(ctx context.Context, op, q string, params map[string]any, out any) error {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()
	return database.WrapError(s.exec.Query(ctx, q, params, out), op)
}

func (s *Store) queryOne(ctx context.Context, op, q string, params map[string]any, out any) (bool, error) {
	ctx, cancel := s.timeouts.QueryContext(ctx)
	defer cancel()
	found, err := s.exec.QueryOne(ctx, q, params, out)
	return found, database.WrapError(err, op)
}

func (s *Store) execute(ctx context.Context, op, q string, params map[string]any) error {
	ctx, cancel := s.timeouts.ExecuteContext(ctx)
	defer cancel()
	return database.WrapError(s.exec.Execute(ctx, q, params), op)
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// isDuplicate reports whether err is a unique index violation.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already contains")
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

func timePtr(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.Unix(*v, 0).UTC()
	return &t
}

// Users

type userRow struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Username      string      `json:"username"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"password_hash"`
	Role          domain.Role `json:"role"`
	Grade         string      `json:"grade"`
	Age           int         `json:"age"`
	FailedSignIns int         `json:"failed_signin_attempts"`
	RegisteredAt  int64       `json:"registration_date"`
	LastLogin     *int64      `json:"last_login,omitempty"`
}

func (r userRow) user() *domain.User {
	return &domain.User{
		ID:            r.ID,
		Name:          r.Name,
		Username:      r.Username,
		Email:         r.Email,
		PasswordHash:  []byte(r.PasswordHash),
		Role:          r.Role,
		Grade:         domain.Grade(r.Grade),
		Age:           r.Age,
		FailedSignIns: r.FailedSignIns,
		RegisteredAt:  time.Unix(r.RegisteredAt, 0).UTC(),
		LastLoginAt:   timePtr(r.LastLogin),
	}
}

const userFields = `meta::id(id) AS id, name, username, email, password_hash, role, grade, age,
	failed_signin_attempts, registration_date, last_login`

// CreateUser stores the user. Emails are stored lower case so lookups
// ignore case.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	ensureID(&u.ID)
	content := map[string]any{
		"name":                   u.Name,
		"username":               u.Username,
		"email":                  strings.ToLower(u.Email),
		"password_hash":          string(u.PasswordHash),
		"role":                   u.Role,
		"grade":                  string(u.Grade),
		"age":                    u.Age,
		"failed_signin_attempts": u.FailedSignIns,
		"registration_date":      u.RegisteredAt.Unix(),
		"last_login":             unixPtr(u.LastLoginAt),
	}
	err := s.execute(ctx, "create user",
		"CREATE type::thing('user', $id) CONTENT $content",
		map[string]any{"id": u.ID, "content": content})
	if isDuplicate(err) {
		return errors.Join(domain.ErrUserAlreadyExists, err)
	}
	return err
}

func (s *Store) findUser(ctx context.Context, where string, params map[string]any) (*domain.User, error) {
	var row userRow
	found, err := s.queryOne(ctx, "find user", "SELECT "+userFields+" FROM user WHERE "+where, params, &row)
	if err != nil || !found {
		return nil, err
	}
	return row.user(), nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, "id = type::thing('user', $id)", map[string]any{"id": id})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, "email = $email", map[string]any{"email": strings.ToLower(email)})
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser(ctx, "username = $username", map[string]any{"username": username})
}

func (s *Store) RecordFailedSignIn(ctx context.Context, id string) (int, error) {
	var row struct {
		FailedSignIns int `json:"failed_signin_attempts"`
	}
	found, err := s.queryOne(ctx, "record failed sign-in",
		"UPDATE type::thing('user', $id) SET failed_signin_attempts += 1 RETURN AFTER",
		map[string]any{"id": id}, &row)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.ErrNotFound
	}
	return row.FailedSignIns, nil
}

func (s *Store) RecordSignIn(ctx context.Context, id string, at time.Time) error {
	return s.execute(ctx, "record sign-in",
		"UPDATE type::thing('user', $id) SET failed_signin_attempts = 0, last_login = $at",
		map[string]any{"id": id, "at": at.Unix()})
}

func (s *Store) UnlockUser(ctx context.Context, email string) error {
	var rows []userRow
	err := s.query(ctx, "unlock user",
		"UPDATE user SET failed_signin_attempts = 0 WHERE email = $email RETURN "+userFields,
		map[string]any{"email": strings.ToLower(email)}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var rows []userRow
	if err := s.query(ctx, "list users",
		"SELECT "+userFields+" FROM user WHERE role = $role ORDER BY username",
		map[string]any{"role": role}, &rows); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, *r.user())
	}
	return users, nil
}

// Progress

type progressRow struct {
	UserID        string `json:"user_id"`
	Points        int    `json:"points"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastActiveOn  *int64 `json:"last_active_on,omitempty"`
}

func (r progressRow) progress() *domain.Progress {
	return &domain.Progress{
		UserID:        r.UserID,
		Points:        r.Points,
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
		LastActiveOn:  timePtr(r.LastActiveOn),
	}
}

const progressFields = "meta::id(id) AS user_id, points, current_streak, longest_streak, last_active_on"

func (s *Store) CreateProgress(ctx context.Context, userID string) error {
	existing, err := s.FindProgress(ctx, userID)
	if err != nil || existing != nil {
		return err
	}
	return s.SaveProgress(ctx, &domain.Progress{UserID: userID})
}

func (s *Store) FindProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	var row progressRow
	found, err := s.queryOne(ctx, "find progress",
		"SELECT "+progressFields+" FROM type::thing('progress', $id)",
		map[string]any{"id": userID}, &row)
	if err != nil || !found {
		return nil, err
	}
	return row.progress(), nil
}

func (s *Store) SaveProgress(ctx context.Context, p *domain.Progress) error {
	return s.execute(ctx, "save progress",
		"UPSERT type::thing('progress', $id) CONTENT $content",
		map[string]any{"id": p.UserID, "content": map[string]any{
			"points":         p.Points,
			"current_streak": p.CurrentStreak,
			"longest_streak": p.LongestStreak,
			"last_active_on": unixPtr(p.LastActiveOn),
		}})
}

// Leaderboard ranks students by points, then username. Students without a
// progress record count as zero. limit <= 0 returns everyone.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var students []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := s.query(ctx, "leaderboard students",
		"SELECT meta::id(id) AS id, username FROM user WHERE role = $role",
		map[string]any{"role": domain.RoleStudent}, &students); err != nil {
		return nil, err
	}
	var progress []progressRow
	if err := s.query(ctx, "leaderboard progress", "SELECT "+progressFields+" FROM progress", nil, &progress); err != nil {
		return nil, err
	}

	points := make(map[string]int, len(progress))
	for _, p := range progress {
		points[p.UserID] = p.Points
	}
	entries := make([]domain.LeaderboardEntry, 0, len(students))
	for _, st := range students {
		entries = append(entries, domain.LeaderboardEntry{Username: st.Username, Points: points[st.ID]})
	}
	slices.SortFunc(entries, func(a, b domain.LeaderboardEntry) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
