package lending

import "errors"

// ErrRateSingularity is returned when the rate law would divide by a
// non-positive anchor rate.
var ErrRateSingularity = errors.New("rate anchor must be positive")

// ErrRateNaN is returned when the rate law produces a value that is not a
// number.
var ErrRateNaN = errors.New("interest rate is not a number")
