package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/proteinscan/backend/internal/domain"
)

// ScanState is the lifecycle state of a scan session
type ScanState string

const (
	ScanStateIdle            ScanState = "idle"
	ScanStateAcquiringCamera ScanState = "acquiring-camera"
	ScanStateDecoding        ScanState = "decoding"
	ScanStateDetected        ScanState = "detected"
	ScanStateFailed          ScanState = "failed"
)

// ScanSession owns one camera acquisition and one decode attempt:
// idle -> acquiring-camera -> decoding -> (detected | failed) -> idle.
// The camera stream is released on every exit path.
type ScanSession struct {
	id      string
	camera  domain.Camera
	decoder domain.BarcodeDecoder

	mu           sync.Mutex
	state        ScanState
	stream       domain.VideoStream
	released     bool
	detectedCode string
}

// NewScanSession creates an idle scan session
func NewScanSession(camera domain.Camera, decoder domain.BarcodeDecoder) *ScanSession {
	return &ScanSession{
		id:      uuid.NewString(),
		camera:  camera,
		decoder: decoder,
		state:   ScanStateIdle,
	}
}

// ID returns the session identifier
func (s *ScanSession) ID() string {
	return s.id
}

// State returns the current lifecycle state
func (s *ScanSession) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DetectedCode returns the decoded barcode once the session reached detected
func (s *ScanSession) DetectedCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectedCode
}

// Start acquires the rear-facing camera and hands the stream to the decode
// library. Camera denial or decoder initialization failure moves the session
// to failed; no fallback data is fabricated.
func (s *ScanSession) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != ScanStateIdle {
		s.mu.Unlock()
		return fmt.Errorf("%w: session already started", domain.ErrInvalidTransition)
	}
	s.state = ScanStateAcquiringCamera
	s.mu.Unlock()

	stream, err := s.camera.Acquire(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = ScanStateFailed
		s.mu.Unlock()
		return err
	}
	s.stream = stream
	s.state = ScanStateDecoding
	s.mu.Unlock()

	// Started without the lock held: the decode library may emit events
	// synchronously, and HandleDecoded takes the lock itself.
	if err := s.decoder.Start(stream, domain.SupportedFormats, s.HandleDecoded); err != nil {
		s.mu.Lock()
		if s.state == ScanStateDecoding {
			s.releaseLocked()
			s.state = ScanStateFailed
		}
		s.mu.Unlock()
		return err
	}

	return nil
}

// HandleDecoded is the decode-library event: it moves the session to detected
// and releases the decoder and camera exactly once. Events arriving after the
// session left decoding are ignored.
func (s *ScanSession) HandleDecoded(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != ScanStateDecoding {
		return
	}
	s.detectedCode = code
	s.state = ScanStateDetected
	s.releaseLocked()
}

// Fail records an externally observed failure (camera denial or decoder error
// reported by the shell) and releases whatever was acquired.
func (s *ScanSession) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == ScanStateIdle {
		return
	}
	s.state = ScanStateFailed
	s.releaseLocked()
}

// Stop is safe to call from any state and returns the session to idle.
// Stopping an already-stopped session is a no-op.
func (s *ScanSession) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	s.state = ScanStateIdle
}

// releaseLocked stops the decoder and the camera stream once. Callers hold s.mu.
func (s *ScanSession) releaseLocked() {
	if s.released {
		return
	}
	s.released = true
	s.decoder.Stop()
	if s.stream != nil {
		s.stream.Stop()
		s.stream = nil
	}
}

// DecoderFactory builds a fresh decoder per session
type DecoderFactory func() domain.BarcodeDecoder

// ScanManager allows at most one active scan session and forwards decoded
// barcodes to the product gateway
type ScanManager struct {
	gateway    domain.ProductGateway
	camera     domain.Camera
	newDecoder DecoderFactory

	mu     sync.Mutex
	active *ScanSession
}

// NewScanManager creates a scan manager with its collaborators
func NewScanManager(gateway domain.ProductGateway, camera domain.Camera, newDecoder DecoderFactory) *ScanManager {
	return &ScanManager{
		gateway:    gateway,
		camera:     camera,
		newDecoder: newDecoder,
	}
}

// StartSession begins a new scan session. A session already decoding is
// stopped first, then replaced; two sessions never hold the camera at once.
func (m *ScanManager) StartSession(ctx context.Context) (*ScanSession, error) {
	m.mu.Lock()
	if m.active != nil {
		m.active.Stop()
		m.active = nil
	}
	session := NewScanSession(m.camera, m.newDecoder())
	m.active = session
	m.mu.Unlock()

	if err := session.Start(ctx); err != nil {
		m.drop(session)
		return session, err
	}
	return session, nil
}

// CompleteScan handles a decoded barcode for the addressed session: the
// session stops exactly once and the code goes to the gateway's barcode
// lookup. The session slot frees regardless of the lookup outcome.
func (m *ScanManager) CompleteScan(ctx context.Context, sessionID, code string) (*domain.ProductRecord, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.HandleDecoded(code)
	if session.State() != ScanStateDetected {
		m.drop(session)
		return nil, fmt.Errorf("%w: session not decoding", domain.ErrInvalidTransition)
	}
	m.drop(session)

	return m.gateway.LookupByBarcode(ctx, code)
}

// FailSession records a shell-reported camera or decoder failure. No network
// call is made.
func (m *ScanManager) FailSession(sessionID string) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	session.Fail()
	m.drop(session)
	return nil
}

// CancelSession stops the addressed session and frees the slot
func (m *ScanManager) CancelSession(sessionID string) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	session.Stop()
	m.drop(session)
	return nil
}

// Active returns the current session, or nil
func (m *ScanManager) Active() *ScanSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// lookup resolves a session id to the active session
func (m *ScanManager) lookup(sessionID string) (*ScanSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.ID() != sessionID {
		return nil, domain.ErrSessionNotFound
	}
	return m.active, nil
}

// drop frees the active slot if it still holds the given session
func (m *ScanManager) drop(session *ScanSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == session {
		m.active = nil
	}
}
