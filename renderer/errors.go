package renderer

import "errors"

var (
	ErrEmptyAggregate   = errors.New("aggregate table is empty")
	ErrInvalidAggregate = errors.New("aggregate table is malformed")
	ErrInvalidOptions   = errors.New("invalid chart options")
	ErrRendering        = errors.New("error rendering chart")
	ErrWritingFile      = errors.New("error writing chart file")
)
