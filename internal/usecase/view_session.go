package usecase

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/proteinscan/backend/internal/domain"
)

// View identifies one of the four app screens
type View int

const (
	ViewHome View = iota
	ViewScanner
	ViewResult
	ViewHistory
)

// String returns the wire name of a view. The switch is exhaustive; adding a
// view without naming it here is a compile-visible change.
func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewScanner:
		return "scanner"
	case ViewResult:
		return "result"
	case ViewHistory:
		return "history"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// MarshalJSON renders views as their wire names
func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON parses a wire name back into a view
func (v *View) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "home":
		*v = ViewHome
	case "scanner":
		*v = ViewScanner
	case "result":
		*v = ViewResult
	case "history":
		*v = ViewHistory
	default:
		return fmt.Errorf("unknown view %q", name)
	}
	return nil
}

// historyCap bounds the recent-history list
const historyCap = 10

// ViewSession owns the app's ephemeral session state: the current view, the
// current result, the capped recent-history list, and the connectivity and
// install flags. State changes only through named transitions; every failure
// path lands back on a stable screen.
type ViewSession struct {
	mu          sync.Mutex
	view        View
	current     *domain.ProductRecord
	query       string
	history     []domain.ProductRecord
	online      bool
	installable bool
	lookupBusy  bool
}

// ViewSnapshot is a read-only copy of the session state for the delivery layer
type ViewSnapshot struct {
	View          View                  `json:"view"`
	Current       *domain.ProductRecord `json:"current,omitempty"`
	Query         string                `json:"query"`
	HistoryLength int                   `json:"historyLength"`
	Online        bool                  `json:"online"`
	Installable   bool                  `json:"installable"`
	LookupBusy    bool                  `json:"lookupBusy"`
}

// NewViewSession creates a session on the home screen with empty defaults
func NewViewSession() *ViewSession {
	return &ViewSession{
		view:    ViewHome,
		history: make([]domain.ProductRecord, 0, historyCap),
		online:  true,
	}
}

// StartScan moves home -> scanner. Scanning requires connectivity and no
// outstanding lookup.
func (s *ViewSession) StartScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewHome {
		return fmt.Errorf("%w: scan starts from home, not %s", domain.ErrInvalidTransition, s.view)
	}
	if !s.online {
		return domain.ErrOffline
	}
	if s.lookupBusy {
		return domain.ErrLookupInFlight
	}

	s.view = ViewScanner
	return nil
}

// RecordScanResult moves scanner -> result after a successful decode+lookup
// and prepends the record to history
func (s *ViewSession) RecordScanResult(record *domain.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewScanner {
		return fmt.Errorf("%w: no scan in progress", domain.ErrInvalidTransition)
	}

	s.current = record
	s.prependHistoryLocked(record)
	s.view = ViewResult
	return nil
}

// ScanFailed returns scanner -> home after a decode failure or a lookup that
// found nothing; the delivery layer surfaces the message
func (s *ViewSession) ScanFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == ViewScanner {
		s.view = ViewHome
	}
}

// CancelScan returns scanner -> home on user cancel
func (s *ViewSession) CancelScan() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == ViewScanner {
		s.view = ViewHome
	}
}

// RecordSearchResult moves home -> result after a successful manual search
// and prepends the record to history
func (s *ViewSession) RecordSearchResult(record *domain.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewHome {
		return fmt.Errorf("%w: search completes from home, not %s", domain.ErrInvalidTransition, s.view)
	}

	s.current = record
	s.prependHistoryLocked(record)
	s.view = ViewResult
	return nil
}

// Back returns result -> home or history -> home
func (s *ViewSession) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.view {
	case ViewResult, ViewHistory:
		s.view = ViewHome
		return nil
	default:
		return fmt.Errorf("%w: no back action from %s", domain.ErrInvalidTransition, s.view)
	}
}

// OpenHistory moves home -> history, reachable only when history is non-empty
func (s *ViewSession) OpenHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewHome {
		return fmt.Errorf("%w: history opens from home, not %s", domain.ErrInvalidTransition, s.view)
	}
	if len(s.history) == 0 {
		return fmt.Errorf("%w: history is empty", domain.ErrInvalidTransition)
	}

	s.view = ViewHistory
	return nil
}

// SelectHistory re-displays a past entry without re-fetching; history entries
// are cached records, not references
func (s *ViewSession) SelectHistory(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewHistory {
		return fmt.Errorf("%w: selection happens on the history screen", domain.ErrInvalidTransition)
	}
	if index < 0 || index >= len(s.history) {
		return domain.ErrInvalidRequest
	}

	record := s.history[index]
	s.current = &record
	s.view = ViewResult
	return nil
}

// BeginLookup marks a lookup in flight; a second lookup while one is
// outstanding is refused
func (s *ViewSession) BeginLookup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lookupBusy {
		return domain.ErrLookupInFlight
	}
	s.lookupBusy = true
	return nil
}

// EndLookup clears the in-flight mark
func (s *ViewSession) EndLookup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupBusy = false
}

// SetQuery stores the current search box contents
func (s *ViewSession) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// SetOnline records the connectivity flag
func (s *ViewSession) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// SetInstallable records whether the install prompt is available
func (s *ViewSession) SetInstallable(installable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installable = installable
}

// History returns the recent records, most recent first
func (s *ViewSession) History() []domain.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ProductRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot returns a copy of the current session state
func (s *ViewSession) Snapshot() ViewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ViewSnapshot{
		View:          s.view,
		Current:       s.current,
		Query:         s.query,
		HistoryLength: len(s.history),
		Online:        s.online,
		Installable:   s.installable,
		LookupBusy:    s.lookupBusy,
	}
}

// prependHistoryLocked puts a record at the front, evicting the oldest beyond
// the cap. Callers hold s.mu.
func (s *ViewSession) prependHistoryLocked(record *domain.ProductRecord) {
	s.history = append([]domain.ProductRecord{*record}, s.history...)
	if len(s.history) > historyCap {
		s.history = s.history[:historyCap]
	}
}
