package services

import "github.com/dmitrijs2005/communityhub/internal/common"

// Error is a failure with a message meant for API clients. Kind is one of
// the common sentinels and decides the HTTP status.
type Error struct {
	Kind  error
	Field string
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func invalid(field, msg string) error {
	return &Error{Kind: common.ErrorValidation, Field: field, Msg: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: common.ErrorForbidden, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: common.ErrorNotFound, Msg: msg}
}
