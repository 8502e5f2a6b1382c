package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"jadoo/model"
)

const (
	chatPath = "/api/chat"

	// FailedResponseText is reported when a non-2xx reply carries no error field.
	FailedResponseText = "Failed to get response"

	maxResponseBytes = 4 << 20
)

// NewTransport returns a transport with dial and TLS timeouts only. Waiting on
// the completion itself is unbounded; the provider round trip sets the pace.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 2,
		ForceAttemptHTTP2:   true,
	}
}

func NewHTTPClient() *http.Client {
	return &http.Client{Transport: NewTransport()}
}

// EndpointClient posts chat requests to a running completion endpoint.
type EndpointClient struct {
	baseURL string
	http    *http.Client
}

// NewEndpointClient targets endpoint, e.g. "http://127.0.0.1:3000". A nil
// client uses NewHTTPClient.
func NewEndpointClient(endpoint string, client *http.Client) *EndpointClient {
	if client == nil {
		client = NewHTTPClient()
	}
	return &EndpointClient{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    client,
	}
}

// Complete sends req and decodes the reply. Any non-2xx status becomes an
// error whose text is the body's error field.
func (c *EndpointClient) Complete(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to read chat response: %w", err)
	}

	var out model.ChatResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != "" {
			return model.ChatResponse{}, &StatusError{Code: resp.StatusCode, Message: out.Error}
		}
		return model.ChatResponse{}, &StatusError{Code: resp.StatusCode, Message: FailedResponseText}
	}
	if decodeErr != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to decode chat response: %w", decodeErr)
	}
	return out, nil
}

// StatusError is a non-2xx endpoint reply. Error returns only the message so
// callers can match on its text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
