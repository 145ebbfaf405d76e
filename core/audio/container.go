package audio

import "fmt"

// Container identifies a transportable audio container by its MIME type.
type Container struct {
	MimeType  string
	Extension string
}

var (
	ContainerOggOpus  = Container{MimeType: "audio/ogg;codecs=opus", Extension: ".ogg"}
	ContainerWebMOpus = Container{MimeType: "audio/webm;codecs=opus", Extension: ".webm"}
	ContainerWAV      = Container{MimeType: "audio/wav", Extension: ".wav"}
)

func (c Container) IsZero() bool {
	return c.MimeType == ""
}

// Filename suggests an upload filename for audio packaged in this container.
func (c Container) Filename(base string) string {
	return base + c.Extension
}

// Encoder packages a raw sample buffer into a transportable container.
type Encoder interface {
	Container() Container
	Encode(pcm []byte, info EncodingInfo) ([]byte, error)
}

// preferredContainers orders containers by upload preference: opus-in-a-container
// when an opus encoder is linked in, otherwise the plain WAV container that is
// always available.
var preferredContainers = []Container{
	ContainerOggOpus,
	ContainerWebMOpus,
	ContainerWAV,
}

// SelectEncoder picks the most preferred container among the provided encoders.
func SelectEncoder(encoders []Encoder) (Encoder, error) {
	for _, container := range preferredContainers {
		for _, encoder := range encoders {
			if encoder.Container().MimeType == container.MimeType {
				return encoder, nil
			}
		}
	}

	if len(encoders) > 0 {
		return encoders[0], nil
	}

	return nil, fmt.Errorf("no audio encoders available")
}

// DefaultEncoders returns the encoders built into this package.
func DefaultEncoders() []Encoder {
	return []Encoder{WAVEncoder{}}
}
