package database

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateMembership = errors.New("user is already a member of this group")
)
