package validation

// ProfileRequest mirrors the fields shared by the self-service profile update
// and the admin user update.
type ProfileRequest struct {
	FirstName string
	LastName  string
	Email     string
}

// ValidateProfileRequest validates the fields of a profile update request.
// Bio is free-form and optional, so it carries no rule.
func ValidateProfileRequest(req ProfileRequest) []FieldError {
	var errs []FieldError

	errs = required(req.FirstName, "firstName", "First name is required", errs)
	errs = required(req.LastName, "lastName", "Last name is required", errs)
	errs = email(req.Email, errs)

	return errs
}

// CreateUserRequest mirrors the fields needed for admin member creation.
type CreateUserRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// ValidateCreateUserRequest validates the fields of a create user request.
func ValidateCreateUserRequest(req CreateUserRequest) []FieldError {
	var errs []FieldError

	errs = required(req.FirstName, "firstName", "First name is required", errs)
	errs = required(req.LastName, "lastName", "Last name is required", errs)
	errs = email(req.Email, errs)
	errs = password(req.Password, errs)
	errs = role(req.Role, errs)

	return errs
}

// UpdateRoleRequest mirrors the fields needed for role update validation.
type UpdateRoleRequest struct {
	Role string
}

// ValidateUpdateRoleRequest validates the fields of a role update request.
func ValidateUpdateRoleRequest(req UpdateRoleRequest) []FieldError {
	var errs []FieldError

	errs = role(req.Role, errs)

	return errs
}
