package form

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledRegister(role string) *Model {
	m := NewModel(RegisterFields)
	m.Load(url.Values{
		"name":             {"Ada Lovelace"},
		"username":         {"ada"},
		"date_of_birth":    {"2008-04-01"},
		"email":            {"ada@example.com"},
		"confirm_email":    {"ada@example.com"},
		"password":         {"Secret#123"},
		"confirm_password": {"Secret#123"},
		"grade":            {"TENTH"},
		"role":             {role},
	})
	return m
}

func TestSatisfied_EveryRequiredCombination(t *testing.T) {
	fields := []Field{
		{ID: "a", Required: true},
		{ID: "b", Required: true},
		{ID: "c"},
		{ID: "grade", Required: true, RequiredFor: "student"},
	}

	for mask := 0; mask < 1<<4; mask++ {
		values := map[string]string{}
		for i, f := range fields {
			if mask&(1<<i) != 0 {
				values[f.ID] = "x"
			} else {
				values[f.ID] = "   "
			}
		}
		aOK, bOK, gradeOK := mask&1 != 0, mask&2 != 0, mask&8 != 0

		assert.Equal(t, aOK && bOK && gradeOK, Satisfied(fields, values, "student"), "student mask %04b", mask)
		assert.Equal(t, aOK && bOK, Satisfied(fields, values, "teacher"), "teacher mask %04b", mask)
	}
}

func TestWatcher(t *testing.T) {
	t.Run("enables submit when all required fields are filled", func(t *testing.T) {
		m := filledRegister("student")
		w := NewWatcher(m, RegisterFields, RoleField)

		assert.True(t, w.Evaluate())
		assert.True(t, m.SubmitEnabled())
	})

	t.Run("grade only counts for students", func(t *testing.T) {
		m := filledRegister("student")
		m.SetValue("form-grade", "")
		w := NewWatcher(m, RegisterFields, RoleField)

		assert.False(t, w.Evaluate())
		assert.True(t, w.SetRole("teacher"))
		assert.Equal(t, "teacher", m.Value(RoleField))
		assert.False(t, w.SetRole("student"))
	})

	t.Run("changed clears only that field's error", func(t *testing.T) {
		m := filledRegister("student")
		m.ShowError("form-email", "This email already exists.")
		m.ShowError("form-name", "You must provide your name.")
		w := NewWatcher(m, RegisterFields, RoleField)

		w.Changed("form-email")

		_, emailErr := m.Error("form-email")
		_, nameErr := m.Error("form-name")
		assert.False(t, emailErr)
		assert.True(t, nameErr)
		assert.True(t, m.SubmitEnabled())
	})

	t.Run("whitespace is blank", func(t *testing.T) {
		m := filledRegister("teacher")
		m.SetValue("form-username", " \t ")
		w := NewWatcher(m, RegisterFields, RoleField)

		assert.False(t, w.Changed("form-username"))
		assert.False(t, m.SubmitEnabled())
	})
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name      string
		table     ErrorTable
		msg       string
		wantField string
	}{
		{"login password", LoginErrors, "Incorrect password. Try again or click Forgot password to reset it.", "form-password"},
		{"login unknown user", LoginErrors, "A user with this email does not exist!", "form-email"},
		{"register weak password", RegisterErrors, "Password is not strong enough. Here are some suggestions: Length(8)", "form-pass"},
		{"register confirm email", RegisterErrors, "  The emails do not match!  ", "form-confirm-email"},
		{"unmapped", RegisterErrors, "Something else went wrong.", ""},
		{"blank", LoginErrors, "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(RegisterFields)
			got := Present(m, tt.table, tt.msg)

			assert.Equal(t, tt.wantField, got)
			if tt.wantField == "" {
				assert.Equal(t, 0, m.ErrorCount())
				return
			}
			assert.Equal(t, 1, m.ErrorCount())
			msg, ok := m.Error(tt.wantField)
			require.True(t, ok)
			assert.Equal(t, strings.TrimSpace(tt.msg), msg)
		})
	}
}

func TestErrorTable_FirstMatchWins(t *testing.T) {
	table := ErrorTable{
		{Message: "password", FieldID: "first"},
		{Message: "Incorrect password.", FieldID: "second"},
	}
	e, ok := table.Match("Incorrect password.")
	require.True(t, ok)
	assert.Equal(t, "first", e.FieldID)
}

func TestCarrier_RoundTripOnce(t *testing.T) {
	store := NewMemoryStore()
	c, err := NewCarrier(store, KeySignUpInfo, RegisterBindings...)
	require.NoError(t, err)

	require.NoError(t, c.Capture(filledRegister("teacher")))
	raw, ok := store.values[KeySignUpInfo]
	require.True(t, ok)
	assert.Equal(t, `{"name":"Ada Lovelace","username":"ada","grade":"TENTH","email":"ada@example.com","selectedRole":"teacher"}`, raw)
	assert.NotContains(t, raw, "Secret#123")
	assert.NotContains(t, raw, "2008-04-01")

	next := NewModel(RegisterFields)
	snap := c.Restore(next)
	want := Snapshot{
		{Key: "name", Value: "Ada Lovelace"},
		{Key: "username", Value: "ada"},
		{Key: "grade", Value: "TENTH"},
		{Key: "email", Value: "ada@example.com"},
		{Key: "selectedRole", Value: "teacher"},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ada", next.Value("form-username"))
	assert.Equal(t, "", next.Value("form-pass"))

	again := NewModel(RegisterFields)
	assert.Nil(t, c.Restore(again))
	assert.Equal(t, "", again.Value("form-name"))
	assert.Equal(t, 0, store.Len())
}

func TestCarrier_RestoreSkipsNullAndMalformed(t *testing.T) {
	store := NewMemoryStore()
	c, err := NewCarrier(store, KeySignUpInfo, RegisterBindings...)
	require.NoError(t, err)

	require.NoError(t, store.Put(KeySignUpInfo, `{"name":null,"username":"bob"}`))
	m := NewModel(RegisterFields)
	m.SetValue("form-name", "kept")
	snap := c.Restore(m)
	assert.Equal(t, Snapshot{{Key: "username", Value: "bob"}}, snap)
	assert.Equal(t, "kept", m.Value("form-name"))

	require.NoError(t, store.Put(KeySignUpInfo, `not json`))
	assert.Nil(t, c.Restore(NewModel(RegisterFields)))
	assert.Equal(t, 0, store.Len())
}

func TestCarrier_RejectsSensitiveBindings(t *testing.T) {
	store := NewMemoryStore()
	for _, b := range []Binding{
		{Key: "password", FieldID: "form-pass"},
		{Key: "confirm", FieldID: "form-confirm-pass"},
		{Key: "dob", FieldID: "form-x"},
		{Key: "date_of_birth", FieldID: "form-y"},
	} {
		_, err := NewCarrier(store, KeySignUpInfo, b)
		assert.ErrorIs(t, err, ErrSensitiveBinding, b.Key)
	}

	_, err := NewValueCarrier(store, "password", "form-password")
	assert.ErrorIs(t, err, ErrSensitiveBinding)
}

func TestValueCarrier(t *testing.T) {
	store := NewMemoryStore()
	vc, err := NewValueCarrier(store, KeyEmail, "form-email")
	require.NoError(t, err)

	m := NewModel(LoginFields)
	m.SetValue("form-email", "ada@example.com")
	require.NoError(t, vc.Capture(m))

	next := NewModel(LoginFields)
	v, ok := vc.Restore(next)
	assert.True(t, ok)
	assert.Equal(t, "ada@example.com", v)
	assert.Equal(t, "ada@example.com", next.Value("form-email"))

	_, ok = vc.Restore(NewModel(LoginFields))
	assert.False(t, ok)

	require.NoError(t, store.Put(KeyEmail, "null"))
	_, ok = vc.Restore(NewModel(LoginFields))
	assert.False(t, ok)
}

func TestDiscard(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(KeySignUpInfo, `{"name":"x"}`))
	Discard(store, KeySignUpInfo)
	_, ok := store.Take(KeySignUpInfo)
	assert.False(t, ok)
}
