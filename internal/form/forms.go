package form

// RoleField is the post key of the register page's student/teacher switch.
const RoleField = "role"

// Register page fields in document order.
var RegisterFields = []Field{
	{ID: "form-name", Name: "name", ErrorID: "err-name", Label: "Full Name", Type: "text", Required: true},
	{ID: "form-username", Name: "username", ErrorID: "err-username", Label: "Username", Type: "text", Required: true},
	{ID: "form-dob", Name: "date_of_birth", ErrorID: "err-dob", Label: "Date of Birth", Type: "date", Required: true},
	{ID: "form-email", Name: "email", ErrorID: "err-email", Label: "Email", Type: "email", Required: true},
	{ID: "form-confirm-email", Name: "confirm_email", ErrorID: "err-confirm-email", Label: "Confirm Email", Type: "email", Required: true},
	{ID: "form-pass", Name: "password", ErrorID: "err-pass", Label: "Password", Type: "password", Required: true},
	{ID: "form-confirm-pass", Name: "confirm_password", ErrorID: "err-confirm-pass", Label: "Confirm Password", Type: "password", Required: true},
	{ID: "form-grade", Name: "grade", ErrorID: "err-grade", Label: "Grade", Type: "select", Required: true, RequiredFor: "student"},
}

// RegisterErrors routes register failures to their field.
var RegisterErrors = ErrorTable{
	{Message: "You must provide your name.", FieldID: "form-name"},
	{Message: "This username already exists.", FieldID: "form-username"},
	{Message: "You must provide a username.", FieldID: "form-username"},
	{Message: "You must provide a valid date of birth.", FieldID: "form-dob"},
	{Message: "This email already exists.", FieldID: "form-email"},
	{Message: "You must provide a valid email address.", FieldID: "form-email"},
	{Message: "The emails do not match!", FieldID: "form-confirm-email"},
	{Message: "You must provide a password.", FieldID: "form-pass"},
	{Message: "Password is not strong enough.", FieldID: "form-pass"},
	{Message: "The passwords do not match!", FieldID: "form-confirm-pass"},
	{Message: "You must select a grade.", FieldID: "form-grade"},
}

// RegisterBindings are the register values carried across a failed submit.
var RegisterBindings = []Binding{
	{Key: "name", FieldID: "form-name"},
	{Key: "username", FieldID: "form-username"},
	{Key: "grade", FieldID: "form-grade"},
	{Key: "email", FieldID: "form-email"},
	{Key: "selectedRole", FieldID: RoleField},
}

// Login page fields.
var LoginFields = []Field{
	{ID: "form-email", Name: "email", ErrorID: "err-email", Label: "Email", Type: "email", Required: true},
	{ID: "form-password", Name: "password", ErrorID: "err-password", Label: "Password", Type: "password", Required: true},
}

// LoginErrors routes login failures to their field.
var LoginErrors = ErrorTable{
	{Message: "A user with this email does not exist!", FieldID: "form-email"},
	{Message: "Incorrect password.", FieldID: "form-password"},
	{Message: "This account is locked.", FieldID: "form-email"},
}
