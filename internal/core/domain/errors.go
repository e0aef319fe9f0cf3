package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already registered")
	ErrClientNotFound     = errors.New("client not found")
	ErrClientExists       = errors.New("client with this name already exists")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrCommentNotFound    = errors.New("comment not found")

	// ErrMembersNotFound is returned when a member id list references at least
	// one user that does not exist. The check is all-or-nothing: nothing is
	// created or updated when it fails.
	ErrMembersNotFound = errors.New("one or more assigned users not found")

	ErrForbidden = errors.New("access forbidden")

	// ErrInvalidInput marks malformed or out-of-range input detected past the
	// transport-layer validator (enum values, cross-entity constraints).
	// Wrap it with context: fmt.Errorf("%w: ...", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")
)
