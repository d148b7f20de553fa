// Package forwarder relays a chat message to a text-generation inference
// endpoint and returns the reply with the extended conversation history.
package forwarder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatrelay/pkg/llm"
	"github.com/papercomputeco/chatrelay/pkg/transcript"
)

// CORSHeaders are set on every response, success or failure.
var CORSHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "OPTIONS,POST",
}

// Forwarder turns API Gateway proxy events into inference calls.
// It holds no per-request state and is safe for concurrent use.
type Forwarder struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
}

// New creates a new Forwarder.
func New(config Config, logger *zap.Logger) (*Forwarder, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Forwarder{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Handle is the Lambda entry point. Every failure is reported to the caller as
// a 500 envelope, so the returned error is always nil.
func (f *Forwarder) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	startTime := time.Now()

	f.logger.Info("received event",
		zap.String("method", event.HTTPMethod),
		zap.String("path", event.Path),
		zap.Int("body_size", len(event.Body)),
	)
	f.logger.Debug("event body", zap.String("body", event.Body))

	resp, err := f.forward(ctx, event)
	if err != nil {
		f.logger.Error("request failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return respond(http.StatusInternalServerError, llm.NewErrorResponse(err)), nil
	}

	f.logger.Info("request served",
		zap.Int("history_len", len(resp.ConversationHistory)),
		zap.String("head_hash", truncate(transcript.Fingerprint(resp.ConversationHistory), 16)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return respond(http.StatusOK, resp), nil
}

// forward runs the whole exchange and returns the success envelope.
func (f *Forwarder) forward(ctx context.Context, event events.APIGatewayProxyRequest) (*llm.ChatResponse, error) {
	req, err := decodeRequest(event)
	if err != nil {
		return nil, err
	}
	message := *req.Message

	f.logger.Debug("user message",
		zap.String("content_preview", truncate(message, 100)),
		zap.Int("history_len", len(req.ConversationHistory)),
		zap.String("parent_hash", truncate(transcript.Fingerprint(req.ConversationHistory), 16)),
	)

	text, err := f.generate(ctx, message)
	if err != nil {
		return nil, err
	}

	return &llm.ChatResponse{
		Success:             true,
		Response:            text,
		ConversationHistory: llm.AppendExchange(req.ConversationHistory, message, text),
	}, nil
}

// generate sends prompt to the inference endpoint and returns the generated text.
func (f *Forwarder) generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(llm.NewGenerateRequest(f.config.Generation, prompt))
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	f.logger.Debug("forwarding request to inference endpoint",
		zap.String("url", f.config.InferenceURL),
		zap.Int("body_size", len(reqBody)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.InferenceURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create inference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("accept", "application/json")

	httpResp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call inference endpoint: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	f.logger.Debug("inference raw response",
		zap.Int("status", httpResp.StatusCode),
		zap.String("body", string(body)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", &InferenceError{StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	var resp llm.InferenceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal inference response: %w", err)
	}

	text, ok := resp.ExtractText()
	if !ok {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func decodeRequest(event events.APIGatewayProxyRequest) (*llm.ChatRequest, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, &RequestError{Reason: "body is not valid base64", Err: err}
		}
		body = decoded
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &RequestError{Reason: "empty body"}
	}

	var req llm.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{Reason: "body is not valid JSON", Err: err}
	}
	if req.Message == nil {
		return nil, &RequestError{Reason: "missing field \"message\""}
	}
	return &req, nil
}

// respond encodes v with the fixed CORS headers.
func respond(status int, v any) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(CORSHeaders))
	for k, val := range CORSHeaders {
		headers[k] = val
	}

	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(llm.NewErrorResponse(fmt.Errorf("marshal response: %w", err)))
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
