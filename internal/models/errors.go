package models

import (
	"fmt"
	"net/http"
)

// Canonical client-facing messages
const (
	MsgBadRequest      = "Bad request"
	MsgInvalidQueries  = "Invalid queries"
	MsgArticleNotFound = "article not found"
	MsgTopicNotFound   = "topic not found"
	MsgCommentNotFound = "comment does not exist"
	MsgUserNotFound    = "user not found"
	MsgRouteNotFound   = "Not found"
	MsgInternalError   = "Internal server error"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// AppError is a failure carrying the HTTP status and message it maps to
type AppError struct {
	Status int
	Msg    string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError builds a 404 with the given message
func NewNotFoundError(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Msg: msg}
}

// NewBadRequestError builds a 400 with the given message
func NewBadRequestError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Msg: msg}
}

// NewInvalidQueriesError is returned for sort_by/order values outside the allow-list
func NewInvalidQueriesError() *AppError {
	return NewBadRequestError(MsgInvalidQueries)
}
