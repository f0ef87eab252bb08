// Package client is the JSON API client the optimistic stores call into.
//
// Every endpoint follows the same contract: creates and updates return the
// full entity, deletes return no body, and any failure carries a
// `{"error": "..."}` body that is surfaced as an *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// ProfileTokenHeader carries the pseudonymous profile token that scopes all
// aggregates to their owner.
const ProfileTokenHeader = "X-Profile-Token"

// genericErrorMessage is shown when a failure carries no readable message.
const genericErrorMessage = "the server returned an unexpected error"

// Error is a failed API call. The message is always human-readable and safe
// to show in a toast.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an API error for a missing resource.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client calls the Ledgerly API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a client for the API at baseURL, authenticating all requests
// with the given profile token.
func New(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
		log:     log,
	}
}

// do performs a request and decodes the response into out, if out is not
// nil. All error responses are mapped to *Error uniformly; the stores do not
// care why a call failed, only that it did.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ProfileTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: fmt.Sprintf("could not reach the server: %v", err)}
	}
	defer func() {
		// Draining is best-effort cleanup, a failure here does not affect
		// the result of the call.
		_ = resp.Body.Close()
	}()

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("%s (HTTP %d)", genericErrorMessage, resp.StatusCode),
	}

	var body struct {
		Message string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}

	return apiErr
}
