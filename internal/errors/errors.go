package errors

import "errors"

// ErrNotFound is returned when a requested row does not exist or does not
// match the status filter of the calling route.
var ErrNotFound = errors.New("not found")

// ErrInsufficientCapacity is returned by the booking insert transaction when
// the requested quantities no longer fit the remaining availability at commit
// time.
var ErrInsufficientCapacity = errors.New("insufficient ticket availability")
