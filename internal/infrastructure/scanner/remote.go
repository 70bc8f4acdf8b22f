// Package scanner adapts the browser's camera and barcode decode library to
// the domain scan interfaces. The physical devices live on the other side of
// HTTP: acquisition is optimistic, and grant/denial/decode outcomes arrive as
// posted shell events.
package scanner

import (
	"context"
	"sync"

	"github.com/proteinscan/backend/internal/domain"
)

// RemoteCamera represents the shell-owned rear-facing camera
type RemoteCamera struct{}

// NewRemoteCamera creates a camera adapter for the PWA shell
func NewRemoteCamera() *RemoteCamera {
	return &RemoteCamera{}
}

// Acquire hands out a stream handle immediately. The browser prompts for
// permission on its side; a denial comes back as a session failure event.
func (c *RemoteCamera) Acquire(ctx context.Context) (domain.VideoStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &remoteStream{}, nil
}

// remoteStream is the handle for a browser-held video stream
type remoteStream struct {
	mu      sync.Mutex
	stopped bool
}

// Stop releases the handle. Safe to call more than once.
func (s *remoteStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// RemoteDecoder represents the shell-owned barcode decode library. Decoded
// strings arrive over HTTP, not through the onDecode callback.
type RemoteDecoder struct {
	mu      sync.Mutex
	started bool
}

// NewRemoteDecoder creates a decoder adapter for the PWA shell
func NewRemoteDecoder() *RemoteDecoder {
	return &RemoteDecoder{}
}

// Start records that the shell decoder is live for this session
func (d *RemoteDecoder) Start(stream domain.VideoStream, formats []domain.BarcodeFormat, onDecode func(code string)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = true
	return nil
}

// Stop is idempotent
func (d *RemoteDecoder) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
}
