package events

const (
	// KindQuerySubmitted identifies a query leaving for the backend.
	KindQuerySubmitted Kind = "query.submitted"
)

// QuerySubmitted reports a query leaving for the backend. Text is empty for
// voice queries.
type QuerySubmitted struct {
	Base
	Text   string
	Voiced bool
}

// NewQuerySubmitted creates a query submission event.
func NewQuerySubmitted(text string, voiced bool) QuerySubmitted {
	return QuerySubmitted{Base: NewBase(KindQuerySubmitted), Text: text, Voiced: voiced}
}
