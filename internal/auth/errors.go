package auth

// Messages shown to the user. The form package routes each of them to a field.
const (
	MsgNameRequired      = "You must provide your name."
	MsgUsernameTaken     = "This username already exists."
	MsgUsernameRequired  = "You must provide a username."
	MsgDateOfBirth       = "You must provide a valid date of birth."
	MsgEmailTaken        = "This email already exists."
	MsgEmailInvalid      = "You must provide a valid email address."
	MsgEmailMismatch     = "The emails do not match!"
	MsgPasswordRequired  = "You must provide a password."
	MsgPasswordMismatch  = "The passwords do not match!"
	MsgPasswordWeak      = "Password is not strong enough. Here are some suggestions: "
	MsgGradeRequired     = "You must select a grade."
	MsgRegistered        = "Registration Successful!"
	MsgUnknownEmail      = "A user with this email does not exist!"
	MsgIncorrectPassword = "Incorrect password. Try again or click Forgot password to reset it."
	MsgAccountLocked     = "This account is locked. Please contact support to unlock your account and reset your password."
	MsgLoggedIn          = "Successfully logged in! Redirecting to dashboard..."
)

// ValidationError is a failure the user can correct. Message is safe to
// show; Err, when set, is the domain error behind it.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}
