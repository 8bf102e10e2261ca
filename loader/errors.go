package loader

import "errors"

var (
	ErrNoInputFiles   = errors.New("no input files configured")
	ErrOpeningFile    = errors.New("error opening input file")
	ErrReadingFile    = errors.New("error reading input file")
	ErrSchemaMismatch = errors.New("input file schema mismatch")
	ErrConcatenating  = errors.New("error concatenating input files")
)
