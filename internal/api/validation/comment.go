package validation

// CommentRequest mirrors the fields needed for comment creation.
type CommentRequest struct {
	Body         string
	DiscussionID string
}

// ValidateCommentRequest validates the fields of a create comment request.
func ValidateCommentRequest(req CommentRequest) []FieldError {
	var errs []FieldError

	errs = required(req.Body, "body", "Comment body is required", errs)
	errs = required(req.DiscussionID, "discussionId", "Discussion ID is required", errs)

	return errs
}
