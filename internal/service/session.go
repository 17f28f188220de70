package service

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ayumi/capgen/internal/domain"
)

// copiedKey is the single slot for the active copy confirmation. Copying a
// second caption overwrites the slot, so at most one confirmation shows.
const copiedKey = "active_copy"

// Session holds all mutable state behind the page: the busy flag, one
// caption batch per mode, and the active copy confirmation. State lives in
// memory only and is dropped when the process exits.
type Session struct {
	mu         sync.Mutex
	generating bool
	batches    map[domain.Mode][]domain.Caption

	copied  *cache.Cache
	copyTTL time.Duration
}

// SessionSnapshot is the page-facing view of the session.
type SessionSnapshot struct {
	Generating bool             `json:"generating"`
	Text       []domain.Caption `json:"text"`
	Image      []domain.Caption `json:"image"`
	CopiedID   string           `json:"copied_id,omitempty"`
}

// NewSession creates an empty session. copyTTL bounds how long a copy
// confirmation stays active before it reverts on its own.
func NewSession(copyTTL time.Duration) *Session {
	return &Session{
		batches: make(map[domain.Mode][]domain.Caption),
		copied:  cache.New(copyTTL, time.Minute),
		copyTTL: copyTTL,
	}
}

// Begin claims the busy flag and clears the mode's previous batch. The check
// and the claim happen in one critical section so two overlapping requests
// can never both proceed. The caller must release the flag with End.
func (s *Session) Begin(mode domain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrGenerationInFlight
	}
	s.generating = true
	delete(s.batches, mode)
	return nil
}

// End releases the busy flag. Safe to call from a defer on every exit path.
func (s *Session) End() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}

// Generating reports whether a generation is currently in flight.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// SetBatch stores a completed caption batch for the mode.
func (s *Session) SetBatch(mode domain.Mode, captions []domain.Caption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[mode] = captions
}

// Batch returns a copy of the mode's current batch, or nil when empty.
func (s *Session) Batch(mode domain.Mode) []domain.Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCaptions(s.batches[mode])
}

// Clear drops the mode's batch. Used when the input changes materially
// (new image selected, text cleared) so stale captions never linger next
// to an input they were not generated from.
func (s *Session) Clear(mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, mode)
}

// FindCaption looks up a caption by ID across both mode batches.
func (s *Session) FindCaption(id string) (domain.Caption, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, captions := range s.batches {
		for _, c := range captions {
			if c.ID == id {
				return c, true
			}
		}
	}
	return domain.Caption{}, false
}

// MarkCopied records the caption as the active copy confirmation and
// returns it together with the confirmation expiry. A later copy replaces
// the slot immediately; otherwise the TTL reverts it.
func (s *Session) MarkCopied(id string) (domain.Caption, time.Time, error) {
	capt, ok := s.FindCaption(id)
	if !ok {
		return domain.Caption{}, time.Time{}, ErrCaptionNotFound
	}

	s.copied.Set(copiedKey, capt.ID, s.copyTTL)
	return capt, time.Now().Add(s.copyTTL), nil
}

// CopiedID returns the caption ID holding the active copy confirmation,
// or the empty string once the confirmation has expired.
func (s *Session) CopiedID() string {
	if v, ok := s.copied.Get(copiedKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Snapshot returns a consistent view of the whole session.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		Generating: s.generating,
		Text:       copyCaptions(s.batches[domain.ModeText]),
		Image:      copyCaptions(s.batches[domain.ModeImage]),
		CopiedID:   s.CopiedID(),
	}
}

func copyCaptions(captions []domain.Caption) []domain.Caption {
	if captions == nil {
		return nil
	}
	out := make([]domain.Caption, len(captions))
	copy(out, captions)
	return out
}
