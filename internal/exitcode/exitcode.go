// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskpop/internal/service"
	"taskpop/internal/todo"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, unknown task).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a storage/network error, including a stored
	// document that fails validation.
	BackendError = 3
)

// Of returns the exit code for an error returned by a task operation.
func Of(err error) int {
	switch {
	case err == nil:
		return Success
	case todo.IsValidation(err), errors.Is(err, service.ErrNotFound):
		return UserError
	case errors.Is(err, service.ErrAuth):
		return AuthError
	default:
		return BackendError
	}
}
