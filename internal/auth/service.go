// Package auth implements registration and sign-in for students and teachers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/learnhub/internal/domain"
)

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)+$")

// RegisterInput is the register form as posted.
type RegisterInput struct {
	Role            string `form:"role"`
	Name            string `form:"name"`
	Username        string `form:"username"`
	DateOfBirth     string `form:"date_of_birth"`
	Email           string `form:"email"`
	ConfirmEmail    string `form:"confirm_email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	Grade           string `form:"grade"`
}

// Service registers and signs in users.
type Service struct {
	users    domain.UserRepository
	progress domain.ProgressRepository
	policy   PasswordPolicy
	now      func() time.Time
}

// NewService creates a Service with the default password policy.
func NewService(users domain.UserRepository, progress domain.ProgressRepository) *Service {
	return &Service{
		users:    users,
		progress: progress,
		policy:   DefaultPasswordPolicy,
		now:      time.Now,
	}
}

// WithClock replaces the service clock. Used by tests and the seed command.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register validates in and creates the account. Checks run in a fixed order
// and stop at the first failure, which is returned as a *ValidationError.
// Students also get an empty progress record.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role := domain.ParseRole(in.Role)
	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return nil, invalid(MsgNameRequired, nil)
	}
	if username != "" {
		existing, err := s.users.FindUserByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("lookup username: %w", err)
		}
		if existing != nil {
			return nil, invalid(MsgUsernameTaken, domain.ErrUserAlreadyExists)
		}
	}
	if username == "" {
		return nil, invalid(MsgUsernameRequired, nil)
	}
	age, err := ParseAge(in.DateOfBirth, s.now())
	if err != nil {
		return nil, invalid(MsgDateOfBirth, err)
	}
	if email != "" {
		existing, err := s.users.FindUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		if existing != nil {
			return nil, invalid(MsgEmailTaken, domain.ErrUserAlreadyExists)
		}
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid(MsgEmailInvalid, nil)
	}
	if strings.TrimSpace(in.ConfirmEmail) != email {
		return nil, invalid(MsgEmailMismatch, nil)
	}
	if in.Password == "" {
		return nil, invalid(MsgPasswordRequired, nil)
	}
	if in.ConfirmPassword != in.Password {
		return nil, invalid(MsgPasswordMismatch, nil)
	}
	if failed := s.policy.Test(in.Password); len(failed) > 0 {
		return nil, invalid(weakPasswordMessage(failed), nil)
	}

	grade := domain.GradeNA
	if role == domain.RoleStudent {
		g, ok := domain.ParseGrade(in.Grade)
		if !ok {
			return nil, invalid(MsgGradeRequired, nil)
		}
		grade = g
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		Email:        email,
		Role:         role,
		Grade:        grade,
		Age:          age,
		RegisteredAt: s.now().UTC(),
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validate user: %w", err)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			// Lost a race with a concurrent registration.
			return nil, invalid(MsgEmailTaken, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if role == domain.RoleStudent {
		if err := s.progress.CreateProgress(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("create progress: %w", err)
		}
	}

	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials. A wrong password counts towards the lockout;
// a locked account is refused even with the right password. A successful
// sign-in resets the counter and records the login time.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, invalid(MsgUnknownEmail, domain.ErrNotFound)
	}

	if !user.CheckPassword(password) {
		if user.Locked() {
			return nil, invalid(MsgAccountLocked, domain.ErrAccountLocked)
		}
		if _, err := s.users.RecordFailedSignIn(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("record failed sign-in: %w", err)
		}
		return nil, invalid(MsgIncorrectPassword, domain.ErrInvalidCredentials)
	}

	if user.Locked() {
		return nil, invalid(MsgAccountLocked, domain.ErrAccountLocked)
	}

	at := s.now().UTC()
	if err := s.users.RecordSignIn(ctx, user.ID, at); err != nil {
		return nil, fmt.Errorf("record sign-in: %w", err)
	}
	user.FailedSignIns = 0
	user.LastLoginAt = &at
	return user, nil
}

// HomePath is where a signed-in user lands.
func HomePath(role domain.Role) string {
	if role == domain.RoleTeacher {
		return "/teacher"
	}
	return "/profile"
}
