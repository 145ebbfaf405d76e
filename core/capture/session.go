package capture

import (
	"fmt"
	"sync"
)

type sessionState int

const (
	sessionRecording sessionState = iota
	sessionFlushing
	sessionDone
)

// session accumulates encoded audio chunks for a single recording. A session
// is created when capture starts and is terminal once finalized; it is never
// reused across recordings.
type session struct {
	mu     sync.Mutex
	state  sessionState
	chunks [][]byte
}

func newSession() *session {
	return &session{state: sessionRecording}
}

// Append stores a copy of the chunk. The device callback may reuse the
// backing buffer, so the chunk cannot be retained as-is. Chunks arriving
// after finalization started are dropped.
func (s *session) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sessionRecording {
		return
	}

	buffered := make([]byte, len(chunk))
	copy(buffered, chunk)
	s.chunks = append(s.chunks, buffered)
}

func (s *session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == sessionRecording
}

// Finalize concatenates all accumulated chunks into a single buffer and
// destroys the session. It returns ErrEmptyRecording when nothing was
// captured.
func (s *session) Finalize() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != sessionRecording {
		return nil, fmt.Errorf("recording session already finalized")
	}
	s.state = sessionFlushing

	total := 0
	for _, chunk := range s.chunks {
		total += len(chunk)
	}

	buffer := make([]byte, 0, total)
	for _, chunk := range s.chunks {
		buffer = append(buffer, chunk...)
	}
	s.chunks = nil
	s.state = sessionDone

	if len(buffer) == 0 {
		return nil, ErrEmptyRecording
	}

	return buffer, nil
}
