package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/koscakluka/calchat/core/audio"
	"github.com/koscakluka/calchat/core/capture"
	"github.com/koscakluka/calchat/core/events"
	"github.com/koscakluka/calchat/core/exchange"
)

type exchangeClientStub struct {
	mu      sync.Mutex
	queries []exchange.Query
	send    func(query exchange.Query) (*exchange.AssistantReply, error)
}

func (stub *exchangeClientStub) Send(_ context.Context, query exchange.Query) (*exchange.AssistantReply, error) {
	stub.mu.Lock()
	stub.queries = append(stub.queries, query)
	stub.mu.Unlock()

	if stub.send != nil {
		return stub.send(query)
	}
	return &exchange.AssistantReply{Markdown: "ok"}, nil
}

type recorderStub struct {
	active    bool
	recording *capture.Recording
	stopErr   error
}

func (stub *recorderStub) Start(context.Context) error {
	stub.active = true
	return nil
}

func (stub *recorderStub) Stop(context.Context) (*capture.Recording, error) {
	stub.active = false
	if stub.stopErr != nil {
		return nil, stub.stopErr
	}
	return stub.recording, nil
}

func (stub *recorderStub) Active() bool { return stub.active }

func (stub *recorderStub) Close() error { return nil }

func TestSubmitTextInstallsReplyAudio(t *testing.T) {
	client := &exchangeClientStub{send: func(exchange.Query) (*exchange.AssistantReply, error) {
		return &exchange.AssistantReply{
			Markdown: "# Today",
			Audio:    &exchange.ReplyAudio{Bytes: []byte{1, 2}, MimeType: "audio/mpeg"},
		}, nil
	}}
	a := New(WithExchangeClient(client))

	reply, err := a.SubmitText(context.Background(), "what's on today?")
	if err != nil {
		t.Fatalf("expected submission to succeed, got %v", err)
	}
	if reply.Markdown != "# Today" {
		t.Fatalf("expected reply markdown, got %q", reply.Markdown)
	}
	if a.ReplyAudio() == nil {
		t.Fatalf("expected reply audio handle to be installed")
	}
	if a.conversation.Len() != 2 {
		t.Fatalf("expected user and assistant entries, got %d", a.conversation.Len())
	}
}

func TestSubmitReleasesPreviousAudioSpeculatively(t *testing.T) {
	calls := 0
	client := &exchangeClientStub{send: func(exchange.Query) (*exchange.AssistantReply, error) {
		calls++
		if calls == 1 {
			return &exchange.AssistantReply{
				Markdown: "first",
				Audio:    &exchange.ReplyAudio{Bytes: []byte{1}, MimeType: "audio/mpeg"},
			}, nil
		}
		return nil, &exchange.NetworkError{Err: errors.New("connection refused")}
	}}
	a := New(WithExchangeClient(client))

	if _, err := a.SubmitText(context.Background(), "first"); err != nil {
		t.Fatalf("expected first submission to succeed, got %v", err)
	}
	first := a.ReplyAudio()
	if first == nil {
		t.Fatalf("expected first reply audio")
	}

	if _, err := a.SubmitText(context.Background(), "second"); err == nil {
		t.Fatalf("expected second submission to fail")
	}
	if !first.Released() {
		t.Fatalf("expected previous audio to be released before the attempt")
	}
	if a.ReplyAudio() != nil {
		t.Fatalf("expected no audio after failed attempt")
	}
	if a.conversation.Len() != 2 {
		t.Fatalf("expected failed attempt to leave transcript untouched, got %d entries", a.conversation.Len())
	}
}

func TestSubmitRejectsConcurrentExchange(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	client := &exchangeClientStub{send: func(exchange.Query) (*exchange.AssistantReply, error) {
		close(started)
		<-release
		return &exchange.AssistantReply{Markdown: "late"}, nil
	}}
	a := New(WithExchangeClient(client))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.SubmitText(context.Background(), "slow")
	}()

	<-started
	_, err := a.SubmitText(context.Background(), "eager")
	if !errors.Is(err, ErrExchangeInFlight) {
		t.Fatalf("expected ErrExchangeInFlight, got %v", err)
	}

	close(release)
	<-done
}

func TestStopRecordingEmptyDoesNotReachExchange(t *testing.T) {
	client := &exchangeClientStub{}
	recorder := &recorderStub{stopErr: capture.ErrEmptyRecording}
	a := New(WithExchangeClient(client), WithRecorder(recorder))

	if err := a.StartRecording(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got %v", err)
	}

	_, err := a.StopRecordingAndSubmit(context.Background())
	if !errors.Is(err, capture.ErrEmptyRecording) {
		t.Fatalf("expected ErrEmptyRecording, got %v", err)
	}
	if len(client.queries) != 0 {
		t.Fatalf("expected no exchange for empty recording, got %d queries", len(client.queries))
	}
}

func TestStopRecordingSubmitsVoiceQuery(t *testing.T) {
	client := &exchangeClientStub{send: func(query exchange.Query) (*exchange.AssistantReply, error) {
		voice, ok := query.(exchange.VoiceQuery)
		if !ok {
			t.Fatalf("expected VoiceQuery, got %T", query)
		}
		if voice.ContainerMime != "audio/wav" {
			t.Fatalf("expected container mime to be forwarded, got %q", voice.ContainerMime)
		}
		return &exchange.AssistantReply{Markdown: "heard"}, nil
	}}
	recorder := &recorderStub{recording: &capture.Recording{
		Bytes:     []byte{1, 2, 3},
		Container: audio.ContainerWAV,
	}}
	a := New(WithExchangeClient(client), WithRecorder(recorder))

	if err := a.StartRecording(context.Background()); err != nil {
		t.Fatalf("expected recording to start, got %v", err)
	}
	reply, err := a.StopRecordingAndSubmit(context.Background())
	if err != nil {
		t.Fatalf("expected submission to succeed, got %v", err)
	}
	if reply.Markdown != "heard" {
		t.Fatalf("expected voice reply, got %q", reply.Markdown)
	}
}

func TestVoiceOperationsWithoutRecorderFail(t *testing.T) {
	a := New(WithExchangeClient(&exchangeClientStub{}))

	if err := a.StartRecording(context.Background()); !errors.Is(err, ErrNoRecorder) {
		t.Fatalf("expected ErrNoRecorder, got %v", err)
	}
	if _, err := a.StopRecordingAndSubmit(context.Background()); !errors.Is(err, ErrNoRecorder) {
		t.Fatalf("expected ErrNoRecorder, got %v", err)
	}
}

func TestEventCallbackObservesLifecycle(t *testing.T) {
	var kinds []events.Kind
	client := &exchangeClientStub{send: func(exchange.Query) (*exchange.AssistantReply, error) {
		return &exchange.AssistantReply{
			Markdown: "done",
			Audio:    &exchange.ReplyAudio{Bytes: []byte{1}, MimeType: "audio/mpeg"},
		}, nil
	}}
	a := New(
		WithExchangeClient(client),
		WithEventCallback(func(event events.Event) { kinds = append(kinds, event.Kind()) }),
	)

	if _, err := a.SubmitText(context.Background(), "hi"); err != nil {
		t.Fatalf("expected submission to succeed, got %v", err)
	}

	want := []events.Kind{events.KindQuerySubmitted, events.KindPlaybackReady, events.KindReplyReceived}
	if len(kinds) != len(want) {
		t.Fatalf("expected events %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, kinds)
		}
	}
}
