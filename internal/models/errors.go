package models

import "errors"

var (
	// ErrNotFound is returned by storage when an establishment, record or lookup row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDataUnavailable is returned when no term data exists for a finance type
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrUnknownFinanceType is returned when a finance type string is not one of the known variants
	ErrUnknownFinanceType = errors.New("unknown finance type")

	// ErrCacheMiss is returned by report caches when a key is absent or expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnknownCategory is returned for a trust report category that is not recognised
	ErrUnknownCategory = errors.New("unknown category")
)
