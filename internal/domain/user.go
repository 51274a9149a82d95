package domain

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the kind of account a person registers with.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole maps a form value onto a Role. Anything other than "teacher"
// is a student, matching the register form's default switch position.
func ParseRole(s string) Role {
	if Role(s) == RoleTeacher {
		return RoleTeacher
	}
	return RoleStudent
}

// MaxFailedSignIns is the number of failed sign-ins tolerated before an
// account is locked. The account locks once the count goes above it.
const MaxFailedSignIns = 5

// User represents a student or teacher account.
type User struct {
	ID            string     `json:"id" validate:"required"`
	Name          string     `json:"name" validate:"required,max=150"`
	Username      string     `json:"username" validate:"required,max=40"`
	Email         string     `json:"email" validate:"required,email,max=150"`
	PasswordHash  []byte     `json:"-"`
	Role          Role       `json:"role" validate:"oneof=student teacher"`
	Grade         Grade      `json:"grade,omitempty" validate:"required_if=Role student"`
	Age           int        `json:"age" validate:"gte=0,lte=100"`
	FailedSignIns int        `json:"failed_signin_attempts"`
	RegisteredAt  time.Time  `json:"registration_date"`
	LastLoginAt   *time.Time `json:"last_login,omitempty"`
}

// Validate runs validation checks on the User struct using the defined tags.
func (u *User) Validate() error {
	return validatorInstance.Struct(u)
}

// SetPassword hashes pwd with bcrypt and stores the hash.
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether pwd matches the stored hash.
func (u *User) CheckPassword(pwd string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd)) == nil
}

// Locked reports whether too many failed sign-ins have been recorded.
func (u *User) Locked() bool {
	return u.FailedSignIns > MaxFailedSignIns
}

// UserRepository defines the contract for user data storage operations.
// Finder methods return (nil, nil) when no user matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	// RecordFailedSignIn increments the failed sign-in counter and returns the new value.
	RecordFailedSignIn(ctx context.Context, id string) (int, error)
	// RecordSignIn resets the failed sign-in counter and stamps the last login.
	RecordSignIn(ctx context.Context, id string, at time.Time) error
	// UnlockUser resets the failed sign-in counter for the account with email.
	UnlockUser(ctx context.Context, email string) error
	ListUsersByRole(ctx context.Context, role Role) ([]User, error)
}
