package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Client performs the request/response exchange with the assistant backend.
//
// Every query targets the same fixed endpoint with POST. The client issues
// exactly one request per Send invocation: no queuing, no deduplication, no
// retries, and no timeout beyond what the platform transport enforces.
// Keeping at most one Send in flight is the caller's responsibility.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the transport, primarily for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(endpoint string, opts ...ClientOption) *Client {
	client := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Send translates the query into its wire shape, performs the exchange, and
// normalizes the response.
func (c *Client) Send(ctx context.Context, query Query) (*AssistantReply, error) {
	ctx, span := tracer.Start(ctx, "assistant exchange")
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("request.id", requestID))

	var (
		body        io.Reader
		contentType string
		voiced      bool
	)
	switch q := query.(type) {
	case TextQuery:
		encoded, err := json.Marshal(struct {
			Query string `json:"query"`
		}{Query: q.Text})
		if err != nil {
			err = fmt.Errorf("failed to encode query: %w", err)
			span.RecordError(err)
			return nil, err
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case VoiceQuery:
		encoded, formContentType, err := encodeVoicePayload(q)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		body = encoded
		contentType = formContentType
		voiced = true
	default:
		return nil, fmt.Errorf("unsupported query type %T", query)
	}
	span.SetAttributes(attribute.Bool("request.voiced", voiced))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		err = fmt.Errorf("failed to create request: %w", err)
		span.RecordError(err)
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := &NetworkError{Err: err}
		span.RecordError(netErr)
		return nil, netErr
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
		span.RecordError(netErr)
		return nil, netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := newBackendError(resp, respBody)
		span.RecordError(backendErr)
		logger.WarnContext(ctx, "assistant backend rejected query",
			"status", resp.StatusCode, "error", backendErr.Message)
		return nil, backendErr
	}

	reply, err := normalizeReply(respBody, resp.Header.Get("Content-Type"), voiced)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("response.has_audio", reply.Audio != nil))
	return reply, nil
}

// encodeVoicePayload packages the recording as a multipart form with a
// single part named "audio".
func encodeVoicePayload(query VoiceQuery) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", uploadFilename(query.ContainerMime))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(query.Audio); err != nil {
		return nil, "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
