package scanner

import "context"

// CameraPreference selects which camera the capture collaborator should open.
type CameraPreference string

const (
	CameraEnvironment CameraPreference = "environment"
	CameraUser        CameraPreference = "user"
)

// ScanConfig carries the decode-loop parameters handed to the capture
// collaborator.
type ScanConfig struct {
	FPS         int
	BoxWidth    int
	BoxHeight   int
	AspectRatio float64
}

// CaptureDevice is the contract for the camera/code-decoding collaborator.
// Start covers both the permission request and camera acquisition: it
// suspends until the camera is running (onDecode/onFrameError may then fire
// from the device's own goroutine) or fails without ever having held the
// resource. Implementations treat onFrameError as ignorable per-frame noise.
type CaptureDevice interface {
	Start(ctx context.Context, pref CameraPreference, cfg ScanConfig, onDecode func(text string), onFrameError func(err error)) error

	// Stop releases the camera. Callers must drop the handle even when Stop
	// returns an error.
	Stop(ctx context.Context) error

	// IsScanning reports whether the device currently holds the camera.
	IsScanning() bool
}
