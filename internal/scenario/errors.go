package scenario

import "errors"

var (
	ErrInvalidStep       = errors.New("invalid step")
	ErrExpectationFailed = errors.New("expectation failed")
	ErrNoButton          = errors.New("no matching button")
	ErrNoModal           = errors.New("response has no modal")
)
