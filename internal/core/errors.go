package core

import (
	"fmt"
	"net/http"
)

// RequestError is an explicit status-plus-message rejection. The handler
// layer passes it through to the response verbatim, ahead of any
// classification of raw database errors.
type RequestError struct {
	Status int
	Msg    string
}

func (e *RequestError) Error() string {
	return e.Msg
}

func (e *RequestError) HTTPStatus() int {
	return e.Status
}

// NotFound reports an absent entity with the wording used by the existence
// checker, e.g. "article does not exist".
func NotFound(entity string) *RequestError {
	return &RequestError{
		Status: http.StatusNotFound,
		Msg:    fmt.Sprintf("%s does not exist", entity),
	}
}

var (
	ErrInvalidSortQuery  = &RequestError{Status: http.StatusBadRequest, Msg: "Invalid sort query"}
	ErrInvalidOrderQuery = &RequestError{Status: http.StatusBadRequest, Msg: "Invalid order by query"}
)
