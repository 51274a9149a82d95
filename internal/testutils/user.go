package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/stretchr/testify/require"
)

// DefaultPassword satisfies the password policy.
const DefaultPassword = "Secret#123"

// TestUser is a stored user together with its plain text password.
type TestUser struct {
	domain.User
	Password string
}

// CreateUser stores a user named username with DefaultPassword. Students
// also get a progress record.
func CreateUser(t *testing.T, store domain.Store, username string, role domain.Role) TestUser {
	t.Helper()
	ctx := context.Background()

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		Grade:        domain.GradeNinth,
		Age:          15,
		RegisteredAt: time.Now().UTC(),
	}
	if role == domain.RoleTeacher {
		u.Grade = domain.GradeNA
		u.Age = 40
	}
	require.NoError(t, u.SetPassword(DefaultPassword))
	require.NoError(t, store.CreateUser(ctx, &u))
	if role == domain.RoleStudent {
		require.NoError(t, store.CreateProgress(ctx, u.ID))
	}
	return TestUser{User: u, Password: DefaultPassword}
}
