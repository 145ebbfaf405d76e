package exchange

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// AssistantReply is the normalized result of an exchange: markdown text plus
// optional synthesized-speech audio. Replies are produced fresh per request
// and never merged with a prior one.
type AssistantReply struct {
	Markdown string
	Audio    *ReplyAudio
}

// ReplyAudio is a decoded synthesized-speech clip.
type ReplyAudio struct {
	Bytes    []byte
	MimeType string
}

const defaultReplyAudioMime = "audio/mpeg"

// Markdown fields are probed in this exact order. The split between the
// text-path and voice-path field names mirrors the backend variants observed
// in the wild and must not be merged.
var (
	textReplyFields  = []string{"result", "output", "message"}
	voiceReplyFields = []string{"text"}
)

// normalizeReply turns a success response body into an AssistantReply.
// Non-JSON bodies are treated as raw markdown verbatim.
func normalizeReply(body []byte, contentType string, voiced bool) (*AssistantReply, error) {
	if !isJSONContent(contentType) {
		return &AssistantReply{Markdown: string(body)}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode reply body: %w", err)
	}

	fields := textReplyFields
	if voiced {
		fields = voiceReplyFields
	}

	markdown, err := resolveMarkdown(payload, fields)
	if err != nil {
		return nil, err
	}

	replyAudio, err := resolveAudio(payload)
	if err != nil {
		return nil, err
	}

	return &AssistantReply{Markdown: markdown, Audio: replyAudio}, nil
}

func isJSONContent(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// resolveMarkdown probes the named fields in priority order, falling back to
// a pretty-printed dump of the whole object when none carries text.
func resolveMarkdown(payload map[string]any, fields []string) (string, error) {
	for _, field := range fields {
		if text, ok := payload[field].(string); ok && text != "" {
			return text, nil
		}
	}

	dump, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to dump reply payload: %w", err)
	}
	return string(dump), nil
}

// resolveAudio decodes the optional base64 audio payload. A data-URI header
// is stripped before decoding; the MIME type defaults to audio/mpeg.
func resolveAudio(payload map[string]any) (*ReplyAudio, error) {
	encoded, ok := payload["audio_b64"].(string)
	if !ok || encoded == "" {
		return nil, nil
	}

	decoded, err := decodeBase64Audio(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reply audio: %w", err)
	}

	mimeType := defaultReplyAudioMime
	if m, ok := payload["mime"].(string); ok && m != "" {
		mimeType = m
	}

	return &ReplyAudio{Bytes: decoded, MimeType: mimeType}, nil
}
