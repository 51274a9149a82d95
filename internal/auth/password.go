package auth

import (
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy is the minimum composition of an acceptable password.
type PasswordPolicy struct {
	Length    int
	Uppercase int
	Numbers   int
	Special   int
}

// DefaultPasswordPolicy requires 8 characters with an uppercase letter, a
// digit and a special character.
var DefaultPasswordPolicy = PasswordPolicy{Length: 8, Uppercase: 1, Numbers: 1, Special: 1}

// Test returns one suggestion per failed rule, e.g. "Length(8)", in rule
// order. An empty result means the password passes.
func (p PasswordPolicy) Test(password string) []string {
	var length, upper, numbers, special int
	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			numbers++
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special++
		}
	}

	var failed []string
	check := func(name string, got, want int) {
		if got < want {
			failed = append(failed, fmt.Sprintf("%s(%d)", name, want))
		}
	}
	check("Length", length, p.Length)
	check("Uppercase", upper, p.Uppercase)
	check("Numbers", numbers, p.Numbers)
	check("Special", special, p.Special)
	return failed
}

// weakPasswordMessage formats the register error for failed rules.
func weakPasswordMessage(failed []string) string {
	return MsgPasswordWeak + strings.Join(failed, ", ")
}
