package git

import "errors"

// Failure taxonomy surfaced to the HTTP boundary. Callers test with
// errors.Is; the engine never retries and never swallows these.
var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrInvalidRef         = errors.New("invalid ref")
	ErrObjectNotFound     = errors.New("object not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrPathNotFound       = errors.New("path not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}
