package main

import (
	"errors"

	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
)

// exitError carries an explicit process exit code alongside the error that
// produced it, so RunE can return a single error value and main still maps
// it to the exit-code table.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeFor maps an error returned from the root command to the process
// exit code table: 0 is never reached here since Execute only returns a
// non-nil error on failure or a deliberate policy/fail-on exit.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	var inputErr *sbomerr.InputError
	var parseErr *sbomerr.ParseError
	var ambiguity *sbomerr.FormatAmbiguity
	var configErr *sbomerr.ConfigError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &parseErr), errors.As(err, &ambiguity), errors.As(err, &configErr):
		return 1
	}

	return 1
}
