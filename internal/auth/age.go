package auth

import (
	"errors"
	"time"
)

// DateLayout is the format of the register form's date input.
const DateLayout = "2006-01-02"

// MaxAge is the oldest age the register form accepts.
const MaxAge = 100

var errBadBirthday = errors.New("invalid date of birth")

// Age returns the whole years between birthday and today.
func Age(birthday, today time.Time) int {
	age := today.Year() - birthday.Year()
	if today.Month() < birthday.Month() ||
		(today.Month() == birthday.Month() && today.Day() < birthday.Day()) {
		age--
	}
	return age
}

// ParseAge parses a form date and returns the age on today. Dates in the
// future or more than MaxAge years back are rejected.
func ParseAge(dob string, today time.Time) (int, error) {
	birthday, err := time.Parse(DateLayout, dob)
	if err != nil {
		return 0, errBadBirthday
	}
	age := Age(birthday, today)
	if birthday.After(today) || age < 0 || age > MaxAge {
		return 0, errBadBirthday
	}
	return age, nil
}
