package events

import (
	"errors"
	"testing"
	"time"
)

func TestEventKindsAreStable(t *testing.T) {
	cases := []struct {
		event Event
		kind  Kind
	}{
		{NewQuerySubmitted("hi", false), KindQuerySubmitted},
		{NewReplyReceived("md", true), KindReplyReceived},
		{NewExchangeFailed(errors.New("boom")), KindExchangeFailed},
		{NewRecordingStarted(), KindRecordingStarted},
		{NewRecordingStopped(time.Second), KindRecordingStopped},
		{NewPlaybackReady("audio/mpeg"), KindPlaybackReady},
	}

	for _, tc := range cases {
		if tc.event.Kind() != tc.kind {
			t.Fatalf("expected kind %q, got %q", tc.kind, tc.event.Kind())
		}
		if tc.event.Timestamp().IsZero() {
			t.Fatalf("expected %q event to carry a timestamp", tc.kind)
		}
	}
}
