package deriver

import "errors"

var (
	ErrMissingColumn    = errors.New("column not found in table")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidLatitude  = errors.New("invalid latitude")
	ErrInvalidLongitude = errors.New("invalid longitude")
	ErrMonthOutOfRange  = errors.New("month out of range")
)
