package system

import "errors"

// ErrCapacityExceeded is returned when a ClassIndex has no room left for a
// newly seen type.
var ErrCapacityExceeded = errors.New("system: class index capacity exceeded")
