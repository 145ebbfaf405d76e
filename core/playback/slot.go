package playback

import "sync"

// Slot owns at most one live audio handle. Replacing a handle releases the
// previous one first, so no two live decoded-audio resources coexist.
type Slot struct {
	mu      sync.Mutex
	current *Handle
}

// Swap releases the currently held handle and installs the next one. A nil
// next simply clears the slot.
func (s *Slot) Swap(next *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		_ = s.current.Close()
	}
	s.current = next
}

// Release closes and drops the held handle, if any.
func (s *Slot) Release() {
	s.Swap(nil)
}

// Current returns the held handle, or nil when the slot is empty.
func (s *Slot) Current() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
