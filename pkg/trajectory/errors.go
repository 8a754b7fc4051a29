package trajectory

import "errors"

// Sentinel errors returned by the trajectory façade.
var (
	// ErrUnsupportedExtension indicates no backend was found for a path's
	// extension.
	ErrUnsupportedExtension = errors.New("trajectory: unsupported extension")

	// ErrBackendCreateFailed indicates the backend factory returned an
	// error or a nil backend.
	ErrBackendCreateFailed = errors.New("trajectory: backend create failed")

	// ErrTopologyMismatch indicates the backend's reported atom count does
	// not match the molecule's atom count. The backend is closed before
	// this error is returned.
	ErrTopologyMismatch = errors.New("trajectory: atom count does not match molecule")

	// ErrDecodeFailed indicates the backend's FetchFrameData or
	// DecodeFrameData call failed, or the decoded frame's atom count does
	// not match the molecule. The cache reservation is cleared before this
	// error is returned.
	ErrDecodeFailed = errors.New("trajectory: decode failed")

	// ErrUnknownHandle indicates a reconfigure/close/decode call used a
	// handle not present in the open-trajectories registry.
	ErrUnknownHandle = errors.New("trajectory: unknown handle")

	// ErrCapacityExceeded indicates more than MaxOpenTrajectories
	// trajectories are already open.
	ErrCapacityExceeded = errors.New("trajectory: too many open trajectories")

	// ErrInvalidFrameIndex indicates a frame index outside [0, numFrames).
	ErrInvalidFrameIndex = errors.New("trajectory: invalid frame index")

	// ErrClosed names an operation on a façade that has already been
	// closed. A Facade keeps no closed state and no operation returns this
	// error; Context calls on a closed handle return ErrUnknownHandle.
	ErrClosed = errors.New("trajectory: façade closed")
)
