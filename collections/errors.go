package collections

import "errors"

// ErrPoolFull is returned when a pool-level capacity ceiling (distinct
// from ordinary chunk growth) has been reached.
var ErrPoolFull = errors.New("collections: pool full")
