package validation

// DiscussionRequest mirrors the fields shared by discussion create and
// update.
type DiscussionRequest struct {
	Title string
	Body  string
}

// ValidateDiscussionRequest validates the fields of a discussion payload.
func ValidateDiscussionRequest(req DiscussionRequest) []FieldError {
	var errs []FieldError

	errs = required(req.Title, "title", "Title is required", errs)
	errs = required(req.Body, "body", "Body is required", errs)

	return errs
}
