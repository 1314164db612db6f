package scanner

import (
	"context"
	"errors"
	"sync"
)

// ChannelDevice is a CaptureDevice for deployments where the physical camera
// lives on a remote client: permission outcomes, decoded payloads and frame
// errors are pushed into it (typically from a WebSocket read loop) instead of
// originating from local hardware.
//
// Start suspends until Grant or Deny is called, mirroring a browser
// permission prompt.
type ChannelDevice struct {
	mu           sync.Mutex
	scanning     bool
	onDecode     func(string)
	onFrameError func(error)
	grant        chan error
}

// NewChannelDevice returns a device awaiting its permission verdict.
func NewChannelDevice() *ChannelDevice {
	return &ChannelDevice{grant: make(chan error, 1)}
}

// Start registers the session callbacks and blocks until the remote side
// grants or denies camera access, or ctx expires.
func (d *ChannelDevice) Start(ctx context.Context, _ CameraPreference, _ ScanConfig, onDecode func(string), onFrameError func(error)) error {
	d.mu.Lock()
	if d.scanning {
		d.mu.Unlock()
		return errors.New("capture already running")
	}
	d.onDecode = onDecode
	d.onFrameError = onFrameError
	d.mu.Unlock()

	select {
	case err := <-d.grant:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	d.mu.Lock()
	d.scanning = true
	d.mu.Unlock()
	return nil
}

// Stop releases the (remote) camera claim. A Start still waiting on its
// permission verdict is resolved with an error so it cannot block forever.
func (d *ChannelDevice) Stop(_ context.Context) error {
	d.mu.Lock()
	d.scanning = false
	d.mu.Unlock()

	select {
	case d.grant <- errors.New("capture stopped before permission resolved"):
	default:
	}
	return nil
}

// IsScanning reports whether a decode callback is live.
func (d *ChannelDevice) IsScanning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scanning
}

// Grant resolves a pending Start successfully. Extra calls are ignored.
func (d *ChannelDevice) Grant() {
	select {
	case d.grant <- nil:
	default:
	}
}

// Deny resolves a pending Start with a permission failure.
func (d *ChannelDevice) Deny(err error) {
	if err == nil {
		err = errors.New("camera permission denied")
	}
	select {
	case d.grant <- err:
	default:
	}
}

// ReportDecode forwards a decoded payload from the remote client. Reports
// before the camera is live are dropped.
func (d *ChannelDevice) ReportDecode(text string) {
	d.mu.Lock()
	cb := d.onDecode
	live := d.scanning
	d.mu.Unlock()
	if live && cb != nil {
		cb(text)
	}
}

// ReportFrameError forwards a per-frame decode miss.
func (d *ChannelDevice) ReportFrameError(err error) {
	d.mu.Lock()
	cb := d.onFrameError
	live := d.scanning
	d.mu.Unlock()
	if live && cb != nil && err != nil {
		cb(err)
	}
}
