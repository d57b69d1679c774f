package apperr

import "fmt"

// Error is a coded application error. The code is what clients key on,
// the message is a default English description.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Codes follow the response code table of the upstream API contract.
var (
	ErrUnsupportedGeoBackend = New(32303, "nearby query is not supported by the configured database backend")

	ErrAuthorDisabled = New(35203, "content author is not available")
	ErrProfilePostsOff = New(35305, "profile post listings are disabled")
	ErrEmptyUserFilter = New(35400, "no users match the requested filter")

	ErrContentExpired = New(36501, "content is outside the date range visible to this account")

	ErrEmptyGroupFilter   = New(37102, "no groups match the requested filter")
	ErrPrivateGroup       = New(37105, "group content is limited to members")
	ErrEmptyHashtagFilter = New(37202, "no hashtags match the requested filter")
	ErrEmptyGeotagFilter  = New(37302, "no geotags match the requested filter")

	ErrPostNotFound    = New(37400, "post does not exist")
	ErrPostDisabled    = New(37401, "post is not available")
	ErrCommentNotFound = New(37500, "comment does not exist")
)

// Warning marks coded responses that mean "no results for this filter"
// rather than a failure: clients get an empty page plus the code.
func IsEmptyFilter(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	switch e.Code {
	case ErrEmptyUserFilter.Code, ErrEmptyGroupFilter.Code, ErrEmptyHashtagFilter.Code, ErrEmptyGeotagFilter.Code:
		return true
	}
	return false
}
