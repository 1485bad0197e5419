package repositories

import "errors"

// Sentinel errors handlers and services branch on. Ownership failures are
// reported as ErrNotFound so the API never reveals whether a foreign record
// exists.
var (
	ErrNotFound        = errors.New("record not found")
	ErrOrderNotPending = errors.New("order is not pending")
)
