package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// wavHeader is the canonical 44-byte RIFF/WAVE header for PCM data.
type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // file size - 8
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

// WAVEncoder packages raw linear16 samples into a WAV container.
type WAVEncoder struct{}

func (WAVEncoder) Container() Container {
	return ContainerWAV
}

func (WAVEncoder) Encode(pcm []byte, info EncodingInfo) ([]byte, error) {
	return EncodeWAV(pcm, info)
}

// EncodeWAV wraps a raw linear16 mono sample buffer in a WAV container.
func EncodeWAV(pcm []byte, info EncodingInfo) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio buffer")
	}
	if info.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", info.SampleRate)
	}
	if info.Format != EncodingLinear16 {
		return nil, fmt.Errorf("unsupported encoding %q, only linear16 can be packaged as WAV", info.Format.Name())
	}

	const (
		numChannels   = uint16(1)
		bitsPerSample = uint16(16)
	)
	dataSize := uint32(len(pcm))

	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    uint32(info.SampleRate),
		ByteRate:      uint32(info.SampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	if _, err := buf.Write(pcm); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeWAV extracts the raw linear16 sample buffer from a WAV container.
func DecodeWAV(data []byte) ([]byte, EncodingInfo, error) {
	if len(data) < 44 {
		return nil, EncodingInfo{}, fmt.Errorf("WAV data too short: need at least 44 bytes, got %d", len(data))
	}

	var header wavHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, EncodingInfo{}, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, EncodingInfo{}, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(header.Format[:]) != "WAVE" {
		return nil, EncodingInfo{}, fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(header.Subchunk1ID[:]) != "fmt " {
		return nil, EncodingInfo{}, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(header.Subchunk2ID[:]) != "data" {
		return nil, EncodingInfo{}, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if header.AudioFormat != 1 {
		return nil, EncodingInfo{}, fmt.Errorf("unsupported audio format %d, only PCM is supported", header.AudioFormat)
	}
	if header.BitsPerSample != 16 {
		return nil, EncodingInfo{}, fmt.Errorf("unsupported bit depth %d, only 16-bit is supported", header.BitsPerSample)
	}
	if header.NumChannels != 1 {
		return nil, EncodingInfo{}, fmt.Errorf("unsupported channel count %d, only mono is supported", header.NumChannels)
	}

	if int(header.Subchunk2Size) > buf.Len() {
		return nil, EncodingInfo{}, fmt.Errorf("invalid WAV file: data chunk declares %d bytes but %d remain", header.Subchunk2Size, buf.Len())
	}

	pcm := make([]byte, header.Subchunk2Size)
	if _, err := io.ReadFull(buf, pcm); err != nil {
		return nil, EncodingInfo{}, fmt.Errorf("failed to read audio samples: %w", err)
	}

	return pcm, EncodingInfo{SampleRate: int(header.SampleRate), Format: EncodingLinear16}, nil
}
