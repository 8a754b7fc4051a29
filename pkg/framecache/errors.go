package framecache

import "errors"

// Sentinel errors returned by framecache operations.
var (
	// ErrInvalidIndex indicates a frame index outside [0, numFrames).
	ErrInvalidIndex = errors.New("framecache: invalid frame index")

	// ErrNotReserved names the misuse of calling Release or Populate on a
	// slot the caller does not hold a reservation for. Release and Populate
	// have no error result, so no operation in this package returns it.
	ErrNotReserved = errors.New("framecache: slot not reserved by caller")
)
