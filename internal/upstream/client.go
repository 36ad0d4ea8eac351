// internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abccorp/corpsite-web/internal/config"
)

// Client talks to the remote corporate API that owns all persistence. It is
// a plain bearer-token pass-through: it never inspects or issues tokens.
//
// No timeout is set on the HTTP client on purpose: requests run to
// completion and the transport default applies.
type Client struct {
	baseURL string
	http    *http.Client
}

// FileUpload is a locally chosen file on its way to the remote upload
// endpoint or the settings document.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func New(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
	}
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Non-2xx statuses and transport
// errors come back as *RequestError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, token, out)
}

func (c *Client) send(req *http.Request, path, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: req.Method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Op:      req.Method + " " + path,
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: req.Method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// serverMessage pulls the {"message": ...} body some endpoints return on
// failure, so it can be surfaced verbatim.
func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
