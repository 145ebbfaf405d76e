package audio

import "testing"

type fakeEncoder struct {
	container Container
}

func (f fakeEncoder) Container() Container { return f.container }

func (f fakeEncoder) Encode(pcm []byte, _ EncodingInfo) ([]byte, error) { return pcm, nil }

func TestSelectEncoderPrefersOpusContainers(t *testing.T) {
	encoder, err := SelectEncoder([]Encoder{
		WAVEncoder{},
		fakeEncoder{container: ContainerOggOpus},
	})
	if err != nil {
		t.Fatalf("expected selection to succeed, got %v", err)
	}
	if encoder.Container().MimeType != ContainerOggOpus.MimeType {
		t.Fatalf("expected opus container to win, got %q", encoder.Container().MimeType)
	}
}

func TestSelectEncoderFallsBackToWAV(t *testing.T) {
	encoder, err := SelectEncoder(DefaultEncoders())
	if err != nil {
		t.Fatalf("expected selection to succeed, got %v", err)
	}
	if encoder.Container().MimeType != ContainerWAV.MimeType {
		t.Fatalf("expected WAV fallback, got %q", encoder.Container().MimeType)
	}
}

func TestSelectEncoderFailsWithoutEncoders(t *testing.T) {
	if _, err := SelectEncoder(nil); err == nil {
		t.Fatalf("expected error with no encoders")
	}
}

func TestContainerFilename(t *testing.T) {
	if got := ContainerWebMOpus.Filename("recording"); got != "recording.webm" {
		t.Fatalf("expected recording.webm, got %q", got)
	}
	if got := ContainerWAV.Filename("recording"); got != "recording.wav" {
		t.Fatalf("expected recording.wav, got %q", got)
	}
}
