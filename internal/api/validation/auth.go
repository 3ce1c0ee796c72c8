package validation

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ValidateRegisterRequest validates the fields of a registration request.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	errs = required(req.FirstName, "firstName", "First name is required", errs)
	errs = required(req.LastName, "lastName", "Last name is required", errs)
	errs = email(req.Email, errs)
	errs = password(req.Password, errs)

	return errs
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Email    string
	Password string
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	errs = email(req.Email, errs)
	errs = required(req.Password, "password", "Password is required", errs)

	return errs
}
