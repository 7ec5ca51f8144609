package cargo

import (
	"fmt"
	"strings"
)

// ExitError is a build process that ran and reported failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// BuildError is the only failure the CI step reports: the build for Profile did not succeed.
type BuildError struct {
	Profile Profile
	Err     error
}

func (e *BuildError) Error() string {
	p := e.Profile.ToString()
	if len(p) > 0 {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	return fmt.Sprintf("%s build failed", p)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
