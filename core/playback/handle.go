package playback

import (
	"fmt"
	"os"
	"sync"

	"github.com/koscakluka/calchat/core/audio"
)

// Handle is an explicitly owned playable-audio resource. The decoded buffer
// is released on Close; released handles return no data.
type Handle struct {
	mu       sync.Mutex
	released bool
	bytes    []byte
	mimeType string
}

func NewHandle(data []byte, mimeType string) *Handle {
	return &Handle{bytes: data, mimeType: mimeType}
}

func (h *Handle) MimeType() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mimeType
}

func (h *Handle) Bytes() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bytes
}

func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// PCM extracts the raw sample stream for handles holding a WAV clip. Other
// containers cannot be played directly and must be saved instead.
func (h *Handle) PCM() ([]byte, audio.EncodingInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return nil, audio.EncodingInfo{}, fmt.Errorf("audio handle already released")
	}

	switch h.mimeType {
	case "audio/wav", "audio/x-wav":
		return audio.DecodeWAV(h.bytes)
	}

	return nil, audio.EncodingInfo{}, fmt.Errorf("cannot decode %q for playback", h.mimeType)
}

// WriteFile saves the clip to disk, for containers the playback device
// cannot render.
func (h *Handle) WriteFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return fmt.Errorf("audio handle already released")
	}

	if err := os.WriteFile(path, h.bytes, 0o644); err != nil {
		return fmt.Errorf("failed to save reply audio: %w", err)
	}
	return nil
}

// Close releases the decoded buffer. It is idempotent.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.released = true
	h.bytes = nil
	return nil
}
