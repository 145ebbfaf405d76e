package events

const (
	// KindReplyReceived identifies a normalized assistant reply.
	KindReplyReceived Kind = "reply.received"
	// KindExchangeFailed identifies a terminal exchange failure.
	KindExchangeFailed Kind = "reply.failed"
)

// ReplyReceived carries a normalized assistant reply.
type ReplyReceived struct {
	Base
	Markdown string
	HasAudio bool
}

// NewReplyReceived creates a reply event.
func NewReplyReceived(markdown string, hasAudio bool) ReplyReceived {
	return ReplyReceived{Base: NewBase(KindReplyReceived), Markdown: markdown, HasAudio: hasAudio}
}

// ExchangeFailed reports a failed exchange attempt. The failure is terminal
// for the attempt only; prior results are untouched.
type ExchangeFailed struct {
	Base
	Err error
}

// NewExchangeFailed creates an exchange failure event.
func NewExchangeFailed(err error) ExchangeFailed {
	return ExchangeFailed{Base: NewBase(KindExchangeFailed), Err: err}
}
