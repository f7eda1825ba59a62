package config

import (
	"errors"
	"fmt"
)

var ErrUnknownLogFormat = errors.New("unknown log_format (must be 'plain' or 'json')")

// ErrInSection is returned if validate basic does not pass for any underlying config service.
type ErrInSection struct {
	Err     error
	Section string
}

func (e ErrInSection) Error() string {
	return fmt.Sprintf("error in [%s] section: %s", e.Section, e.Err.Error())
}

func (e ErrInSection) Unwrap() error {
	return e.Err
}

// ErrNotPositive is returned when a field that must be at least 1 is not.
type ErrNotPositive struct {
	Field string
}

func (e ErrNotPositive) Error() string {
	return fmt.Sprintf("%s must be positive", e.Field)
}

type ErrUnknownDBBackend struct {
	Backend string
}

func (e ErrUnknownDBBackend) Error() string {
	return fmt.Sprintf("unknown db_backend %q (must be 'goleveldb' or 'memdb')", e.Backend)
}
