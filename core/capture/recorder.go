package capture

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/koscakluka/calchat/core/audio"
	"go.opentelemetry.io/otel/attribute"
)

// Device is a live microphone stream handle.
type Device interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
}

// DeviceOpener acquires a capture device. Implementations map platform
// failures to ErrPermissionDenied and ErrUnsupported.
type DeviceOpener func(ctx context.Context) (Device, error)

// Recording is a finalized voice capture packaged for upload.
type Recording struct {
	Bytes     []byte
	Container audio.Container
	Duration  time.Duration
}

// Recorder turns a live microphone stream into a single encoded audio buffer.
//
// A recorder runs at most one recording session at a time; sessions are
// single-use. Starting a recording while one is active is a precondition
// violation and panics.
type Recorder struct {
	origin     *url.URL
	openDevice DeviceOpener
	encoder    audio.Encoder

	mu      sync.Mutex
	device  Device
	session *session
}

type RecorderOption func(*Recorder)

// WithEncoders overrides the available container encoders. The most
// preferred supported container wins.
func WithEncoders(encoders []audio.Encoder) RecorderOption {
	return func(r *Recorder) {
		if encoder, err := audio.SelectEncoder(encoders); err == nil {
			r.encoder = encoder
		}
	}
}

func NewRecorder(origin string, openDevice DeviceOpener, opts ...RecorderOption) (*Recorder, error) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend origin: %w", err)
	}

	encoder, err := audio.SelectEncoder(audio.DefaultEncoders())
	if err != nil {
		return nil, fmt.Errorf("failed to select audio encoder: %w", err)
	}

	recorder := &Recorder{
		origin:     parsed,
		openDevice: openDevice,
		encoder:    encoder,
	}
	for _, opt := range opts {
		opt(recorder)
	}

	return recorder, nil
}

// Container reports the container recordings will be packaged into.
func (r *Recorder) Container() audio.Container {
	return r.encoder.Container()
}

// RequestAccess acquires the capture device. The secure-origin check runs
// before any device is touched.
func (r *Recorder) RequestAccess(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requestAccessLocked(ctx)
}

func (r *Recorder) requestAccessLocked(ctx context.Context) error {
	if r.device != nil {
		return nil
	}

	if !secureOriginOrLocal(r.origin) {
		return ErrInsecureContext
	}

	if r.openDevice == nil {
		return ErrUnsupported
	}

	device, err := r.openDevice(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire capture device: %w", err)
	}

	r.device = device
	return nil
}

// Start begins accumulating encoded audio chunks from the device into a new
// recording session. It acquires the device first when none is held yet.
func (r *Recorder) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "start capture")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil && r.session.Active() {
		panic("capture: recording already active")
	}

	if err := r.requestAccessLocked(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	session := newSession()
	if err := r.device.StartCapture(ctx, session.Append); err != nil {
		err = fmt.Errorf("failed to start capture: %w", err)
		span.RecordError(err)
		return err
	}

	r.session = session
	logger.InfoContext(ctx, "recording started",
		"container", r.encoder.Container().MimeType)
	return nil
}

// Active reports whether a recording session is currently accumulating audio.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil && r.session.Active()
}

// Stop finalizes the current recording session, concatenates the accumulated
// chunks, and packages them into the selected container. The device's
// hardware tracks are released unconditionally, even on failure, so the
// microphone indicator turns off.
func (r *Recorder) Stop(ctx context.Context) (*Recording, error) {
	_, span := tracer.Start(ctx, "stop capture")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil, fmt.Errorf("no recording in progress")
	}

	if r.device != nil {
		defer func() {
			if err := r.device.StopCapture(); err != nil {
				logger.Warn("failed to release capture device", "error", err)
			}
		}()
	}

	session := r.session
	r.session = nil

	pcm, err := session.Finalize()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	info := r.device.EncodingInfo()
	encoded, err := r.encoder.Encode(pcm, info)
	if err != nil {
		err = fmt.Errorf("failed to encode recording: %w", err)
		span.RecordError(err)
		return nil, err
	}

	recording := &Recording{
		Bytes:     encoded,
		Container: r.encoder.Container(),
		Duration:  info.Duration(len(pcm)),
	}

	span.SetAttributes(
		attribute.Int("recording.bytes", len(recording.Bytes)),
		attribute.Float64("recording.duration_seconds", recording.Duration.Seconds()),
	)
	return recording, nil
}

// Close releases the capture device.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = nil
	if r.device == nil {
		return nil
	}

	err := r.device.StopCapture()
	r.device = nil
	return err
}
