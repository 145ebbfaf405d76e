package playback

import (
	"context"
	"fmt"
)

// Output is a playback sink for raw sample streams, typically a miniaudio
// playback device.
type Output interface {
	StartPlayback(ctx context.Context) error
	SendAudio(audio []byte) error
}

// Player renders WAV reply clips through a playback sink.
type Player struct {
	out Output
}

func NewPlayer(out Output) *Player {
	return &Player{out: out}
}

// Play decodes the handle and queues its samples on the output. It returns
// an error for containers the sink cannot render; callers fall back to
// saving the clip.
func (p *Player) Play(ctx context.Context, handle *Handle) error {
	if p == nil || p.out == nil {
		return fmt.Errorf("no playback output configured")
	}
	if handle == nil {
		return fmt.Errorf("no audio to play")
	}

	pcm, _, err := handle.PCM()
	if err != nil {
		return err
	}

	if err := p.out.StartPlayback(ctx); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	if err := p.out.SendAudio(pcm); err != nil {
		return fmt.Errorf("failed to queue reply audio: %w", err)
	}
	return nil
}
