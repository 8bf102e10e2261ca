package storage

import "errors"

var (
	ErrOpeningDatabase = errors.New("error opening database")
	ErrSchema          = errors.New("error creating database schema")
	ErrSavingRun       = errors.New("error saving run")
	ErrUnknownTable    = errors.New("unknown table")
)
