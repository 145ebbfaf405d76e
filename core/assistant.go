package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/koscakluka/calchat/core/events"
	"github.com/koscakluka/calchat/core/exchange"
	"github.com/koscakluka/calchat/core/playback"
)

var (
	// ErrExchangeInFlight is returned when a submission arrives while a
	// previous exchange has not completed. The assistant never queues or
	// deduplicates requests.
	ErrExchangeInFlight = errors.New("an exchange is already in flight")

	// ErrNoRecorder is returned when voice operations are used without a
	// configured recorder.
	ErrNoRecorder = errors.New("no recorder configured")
)

// Assistant ties microphone capture, the backend exchange, and the reply
// audio slot together for a single interface instance.
//
// At most one capture session and one outstanding exchange are active at a
// time. Every submission speculatively releases the previous reply audio
// before the request leaves, so a failed attempt leaves no audio behind
// while prior markdown results stay untouched.
type Assistant struct {
	exchangeClient ExchangeClient
	recorder       Recorder

	audioSlot playback.Slot
	emit      eventEmitter

	conversation Conversation

	exchanging atomic.Bool
}

// ExchangeClient performs the request/response exchange with the backend.
type ExchangeClient interface {
	Send(ctx context.Context, query exchange.Query) (*exchange.AssistantReply, error)
}

func New(opts ...Option) *Assistant {
	a := &Assistant{emit: noopEventEmitter}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// SubmitText sends a typed query to the backend and installs any reply audio
// in the slot.
func (a *Assistant) SubmitText(ctx context.Context, text string) (*exchange.AssistantReply, error) {
	return a.submit(ctx, exchange.TextQuery{Text: text})
}

// StartRecording begins a voice capture session.
func (a *Assistant) StartRecording(ctx context.Context) error {
	if a.recorder == nil {
		return ErrNoRecorder
	}

	if err := a.recorder.Start(ctx); err != nil {
		return err
	}

	a.emit(events.NewRecordingStarted())
	return nil
}

// Recording reports whether a capture session is active.
func (a *Assistant) Recording() bool {
	return a.recorder != nil && a.recorder.Active()
}

// StopRecordingAndSubmit finalizes the capture session and sends the
// recording to the backend. A capture-side failure (including an empty
// recording) never reaches the exchange.
func (a *Assistant) StopRecordingAndSubmit(ctx context.Context) (*exchange.AssistantReply, error) {
	if a.recorder == nil {
		return nil, ErrNoRecorder
	}

	recording, err := a.recorder.Stop(ctx)
	if err != nil {
		a.emit(events.NewRecordingStopped(0))
		return nil, err
	}
	a.emit(events.NewRecordingStopped(recording.Duration))

	return a.submit(ctx, exchange.VoiceQuery{
		Audio:         recording.Bytes,
		ContainerMime: recording.Container.MimeType,
	})
}

// ReplyAudio returns the currently held reply audio handle, or nil.
func (a *Assistant) ReplyAudio() *playback.Handle {
	return a.audioSlot.Current()
}

// Conversation returns a snapshot of the session transcript.
func (a *Assistant) Conversation() []Entry {
	return a.conversation.Entries()
}

func (a *Assistant) submit(ctx context.Context, query exchange.Query) (*exchange.AssistantReply, error) {
	ctx, span := tracer.Start(ctx, "submit query")
	defer span.End()

	if a.exchangeClient == nil {
		return nil, fmt.Errorf("no exchange client configured")
	}

	if !a.exchanging.CompareAndSwap(false, true) {
		return nil, ErrExchangeInFlight
	}
	defer a.exchanging.Store(false)

	var (
		text   string
		voiced bool
	)
	switch q := query.(type) {
	case exchange.TextQuery:
		text = q.Text
	case exchange.VoiceQuery:
		voiced = true
	}

	// The previous reply audio is released before the request leaves. A
	// failure past this point legitimately leaves no audio until a
	// successful retry.
	a.audioSlot.Release()
	a.emit(events.NewQuerySubmitted(text, voiced))

	reply, err := a.exchangeClient.Send(ctx, query)
	if err != nil {
		span.RecordError(err)
		a.emit(events.NewExchangeFailed(err))
		return nil, err
	}

	a.conversation.Append(text, voiced, reply)

	if reply.Audio != nil {
		a.audioSlot.Swap(playback.NewHandle(reply.Audio.Bytes, reply.Audio.MimeType))
		a.emit(events.NewPlaybackReady(reply.Audio.MimeType))
	}

	a.emit(events.NewReplyReceived(reply.Markdown, reply.Audio != nil))
	logger.InfoContext(ctx, "assistant reply received",
		"voiced", voiced, "has_audio", reply.Audio != nil)
	return reply, nil
}

// Close releases the recorder and any held reply audio.
func (a *Assistant) Close() error {
	a.audioSlot.Release()

	if a.recorder == nil {
		return nil
	}
	return a.recorder.Close()
}
