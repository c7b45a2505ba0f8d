package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client performs requests against a remote REST backend. It normalizes
// error statuses into user-facing messages and unwraps the backend's
// response envelope. It never retries and never logs; the layers above
// decide what a failure means.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// RequestError is a non-2xx response mapped to a user-facing message.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// ErrorFromStatus builds the RequestError for a status code. Fixed codes get
// fixed messages; for anything else a server-provided {"error": ...} body is
// surfaced when present.
func ErrorFromStatus(status int, body []byte) *RequestError {
	switch status {
	case http.StatusBadRequest:
		return &RequestError{Status: status, Message: "Bad request"}
	case http.StatusNotFound:
		return &RequestError{Status: status, Message: "Not found"}
	case http.StatusConflict:
		return &RequestError{Status: status, Message: "Time slot already booked"}
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return &RequestError{Status: status, Message: payload.Error}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("Request failed with status %d", status)}
}

// Options configures a single request.
type Options struct {
	Body any
}

// Do sends a request and decodes the response into out. A nil out or an
// empty/204 response skips decoding. Cookies attached to ctx via WithCookies
// are forwarded to the backend.
func (c *Client) Do(ctx context.Context, method, path string, opts Options, out any) error {
	res, body, err := c.send(ctx, method, path, opts)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return ErrorFromStatus(res.StatusCode, body)
	}

	if out == nil || res.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeEnvelope(body, out)
}

// Exchange sends a request without error classification: the raw status,
// body and backend Set-Cookie values are handed back so the auth relay can
// mirror the backend response verbatim. Transport failures still error.
type Exchange struct {
	Status  int
	Body    json.RawMessage
	Cookies []*http.Cookie
}

func (c *Client) Exchange(ctx context.Context, method, path string, opts Options) (*Exchange, error) {
	res, body, err := c.send(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	return &Exchange{
		Status:  res.StatusCode,
		Body:    json.RawMessage(body),
		Cookies: res.Cookies(),
	}, nil
}

func (c *Client) send(ctx context.Context, method, path string, opts Options) (*http.Response, []byte, error) {
	var reader io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cookies := cookiesFromContext(ctx); cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}
	return res, body, nil
}

// Decode unwraps a raw body the same way Do does, for callers that went
// through Exchange.
func Decode(raw []byte, out any) error {
	return decodeEnvelope(raw, out)
}

// decodeEnvelope accepts both response shapes the backend emits: a bare JSON
// value, or the value wrapped as {"data": ...}. The ambiguity stops here; the
// stores only ever see the unwrapped value.
func decodeEnvelope(raw []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}
