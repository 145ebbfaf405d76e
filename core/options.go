package assistant

import (
	"context"

	"github.com/koscakluka/calchat/core/capture"
	"github.com/koscakluka/calchat/core/events"
)

type Option func(*Assistant)

// Recorder turns a live microphone stream into a single encoded recording.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (*capture.Recording, error)
	Active() bool
	Close() error
}

func WithExchangeClient(client ExchangeClient) Option {
	return func(a *Assistant) { a.exchangeClient = client }
}

func WithRecorder(recorder Recorder) Option {
	return func(a *Assistant) { a.recorder = recorder }
}

// WithEventCallback registers a callback for assistant events. The callback
// runs inline on the submission path and should not block.
func WithEventCallback(callback func(events.Event)) Option {
	return func(a *Assistant) {
		if callback == nil {
			a.emit = noopEventEmitter
			return
		}
		a.emit = callback
	}
}
