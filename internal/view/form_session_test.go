package view_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/nfrund/learnhub/internal/form"
	"github.com/nfrund/learnhub/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSession_TakeConsumes(t *testing.T) {
	c, rec := setupTestContext()
	store := view.NewFormSession(c)

	require.NoError(t, store.Put(form.KeyEmail, "ada@example.com"))

	v, ok := store.Take(form.KeyEmail)
	assert.True(t, ok)
	assert.Equal(t, "ada@example.com", v)

	_, ok = store.Take(form.KeyEmail)
	assert.False(t, ok, "a value is read at most once")

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "form-session" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Zero(t, cookie.MaxAge, "the cookie lasts for the browser session")
}

func TestFormSession_CarriesRegisterSnapshot(t *testing.T) {
	c, _ := setupTestContext()
	store := view.NewFormSession(c)

	carrier, err := form.NewCarrier(store, form.KeySignUpInfo, form.RegisterBindings...)
	require.NoError(t, err)

	submitted := form.NewModel(form.RegisterFields)
	submitted.SetValue("form-name", "Ada Lovelace")
	submitted.SetValue("form-email", "ada@example.com")
	submitted.SetValue("form-pass", "Secret#123")
	submitted.SetValue(form.RoleField, "student")
	require.NoError(t, carrier.Capture(submitted))

	restored := form.NewModel(form.RegisterFields)
	snap := carrier.Restore(restored)
	assert.Equal(t, "Ada Lovelace", restored.Value("form-name"))
	assert.Equal(t, "", restored.Value("form-pass"))
	got, _ := snap.Get("selectedRole")
	assert.Equal(t, "student", got)

	raw, ok := store.Take(form.KeySignUpInfo)
	assert.False(t, ok, "restore consumed the snapshot: %s", raw)
	assert.False(t, strings.Contains(raw, "Secret"))
}
