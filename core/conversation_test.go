package assistant

import (
	"testing"

	"github.com/koscakluka/calchat/core/exchange"
)

func TestConversationAppendRecordsBothSides(t *testing.T) {
	c := &Conversation{}
	c.Append("question", true, &exchange.AssistantReply{
		Markdown: "answer",
		Audio:    &exchange.ReplyAudio{Bytes: []byte{1}, MimeType: "audio/mpeg"},
	})

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}

	user, reply := entries[0], entries[1]
	if user.Role != RoleUser || user.Markdown != "question" || !user.Voiced {
		t.Fatalf("unexpected user entry %+v", user)
	}
	if reply.Role != RoleAssistant || reply.Markdown != "answer" || !reply.HasAudio {
		t.Fatalf("unexpected assistant entry %+v", reply)
	}
	if user.ID == "" || user.ID == reply.ID {
		t.Fatalf("expected distinct entry IDs, got %q and %q", user.ID, reply.ID)
	}
}

func TestConversationEntriesReturnsCopy(t *testing.T) {
	c := &Conversation{}
	c.Append("q", false, &exchange.AssistantReply{Markdown: "a"})

	entries := c.Entries()
	entries[0].Markdown = "mutated"

	if c.Entries()[0].Markdown != "q" {
		t.Fatalf("expected snapshot mutation to not affect the transcript")
	}
}
