package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/koscakluka/calchat/core/exchange"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one line of the session transcript.
type Entry struct {
	ID        string
	Role      Role
	Markdown  string
	Voiced    bool
	HasAudio  bool
	CreatedAt time.Time
}

// Conversation is the in-memory session transcript. It holds no state
// beyond the current session.
type Conversation struct {
	mu      sync.RWMutex
	entries []Entry
}

// Append records a completed turn: the user's query followed by the
// assistant's reply.
func (c *Conversation) Append(queryText string, voiced bool, reply *exchange.AssistantReply) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries,
		Entry{
			ID:        uuid.NewString(),
			Role:      RoleUser,
			Markdown:  queryText,
			Voiced:    voiced,
			CreatedAt: now,
		},
		Entry{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Markdown:  reply.Markdown,
			HasAudio:  reply.Audio != nil,
			CreatedAt: now,
		},
	)
}

// Entries returns a point-in-time copy of the transcript.
func (c *Conversation) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entries []Entry
	_ = copier.Copy(&entries, c.entries)
	return entries
}

// Len reports the number of transcript entries.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
