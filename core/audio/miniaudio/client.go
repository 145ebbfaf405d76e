package miniaudio

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
	"github.com/koscakluka/calchat/core/audio"
	"github.com/koscakluka/calchat/core/capture"
)

// Client wraps one miniaudio context with a capture and a playback device.
// It serves both as the recorder's device handle and as the reply-audio
// playback sink.
type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	playbackClient
	captureClient
}

func NewClient() (*Client, error) {
	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) {},
	)
	if err != nil {
		return nil, classifyDeviceError(fmt.Errorf("failed to initialize audio context: %w", err))
	}

	client := Client{
		audioContext: audioCtx,
	}

	if err := client.captureClient.Init(audioCtx); err != nil {
		client.Close()
		return nil, classifyDeviceError(err)
	}

	if err := client.playbackClient.Init(audioCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize playback client: %w", err)
	}

	return &client, nil
}

// classifyDeviceError maps platform capture failures onto the capture error
// taxonomy so callers can distinguish a denied microphone from a missing one.
func classifyDeviceError(err error) error {
	if err == nil {
		return nil
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "access denied"), strings.Contains(message, "permission"):
		return fmt.Errorf("%w: %v", capture.ErrPermissionDenied, err)
	case strings.Contains(message, "no device"), strings.Contains(message, "device type not supported"),
		strings.Contains(message, "no backend"):
		return fmt.Errorf("%w: %v", capture.ErrUnsupported, err)
	}

	return err
}

func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.captureClient.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

func (c *Client) StartPlayback(_ context.Context) error {
	return c.playbackClient.Start()
}

func (c *Client) StopPlayback() error {
	return c.playbackClient.Stop()
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.playbackClient.Uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
