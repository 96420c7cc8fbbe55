/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codenotary/sap/pkg/api"
)

const (
	defaultHTTPMaxAttempts = 5
	defaultHTTPBaseDelay   = 700 * time.Millisecond
	defaultHTTPMaxDelay    = 15 * time.Second
	defaultHTTPTimeout     = 30 * time.Second

	maxBodySnippet = 200
)

// HTTP fetches objects from a remote URL expected to return a JSON object
// array, typically the /all_data endpoint of another provider. Requests
// are retried with exponential backoff on 429, 5xx and transient network
// errors, honoring Retry-After when the server sends one.
type HTTP struct {
	url    string
	token  string
	client *http.Client

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewHTTP returns a source fetching from the given URL.
func NewHTTP(url string) *HTTP {
	return &HTTP{
		url:         url,
		client:      &http.Client{Timeout: defaultHTTPTimeout},
		maxAttempts: defaultHTTPMaxAttempts,
		baseDelay:   defaultHTTPBaseDelay,
		maxDelay:    defaultHTTPMaxDelay,
	}
}

// WithToken sets the bearer token sent with every request.
func (h *HTTP) WithToken(token string) *HTTP {
	h.token = token
	return h
}

// WithClient replaces the underlying HTTP client.
func (h *HTTP) WithClient(client *http.Client) *HTTP {
	h.client = client
	return h
}

// WithMaxAttempts sets how often a fetch is tried before giving up.
func (h *HTTP) WithMaxAttempts(n int) *HTTP {
	if n > 0 {
		h.maxAttempts = n
	}
	return h
}

// WithBackoff sets the base and cap of the exponential retry delay.
func (h *HTTP) WithBackoff(base, max time.Duration) *HTTP {
	h.baseDelay = base
	h.maxDelay = max
	return h
}

func (h *HTTP) Fetch(ctx context.Context) ([]*api.Object, error) {
	var lastErr error
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		objects, retryIn, err := h.fetchOnce(ctx)
		if err == nil {
			return objects, nil
		}
		lastErr = err
		if retryIn < 0 || attempt == h.maxAttempts {
			break
		}
		if err := h.sleepBackoff(ctx, attempt, retryIn); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// fetchOnce reports through retryIn how to proceed after a failure. A
// negative duration means the error is permanent, zero means retry with
// backoff and a positive value is a server supplied Retry-After delay.
func (h *HTTP) fetchOnce(ctx context.Context) ([]*api.Object, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, -1, ctx.Err()
		}
		if isRetryableNetErr(err) {
			return nil, 0, err
		}
		return nil, -1, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isRetryableNetErr(err) {
			return nil, 0, err
		}
		return nil, -1, err
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("error fetching objects from %s: status=%d body=%s",
			h.url, resp.StatusCode, bodySnippet(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, retryAfter(resp), err
		}
		return nil, -1, err
	}

	objects, err := DecodeObjects(body)
	if err != nil {
		return nil, -1, fmt.Errorf("error decoding objects from %s: %v", h.url, err)
	}
	return objects, -1, nil
}

func (h *HTTP) sleepBackoff(ctx context.Context, attempt int, retryIn time.Duration) error {
	sleep := retryIn
	if sleep == 0 {
		sleep = h.baseDelay * time.Duration(1<<uint(attempt-1))
		if sleep > h.maxDelay {
			sleep = h.maxDelay
		}
		sleep += time.Duration(rand.Intn(400)) * time.Millisecond
	}
	select {
	case <-time.After(sleep):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *HTTP) String() string {
	return fmt.Sprintf("http(%s)", h.url)
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout() || nerr.Temporary()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "unexpected eof")
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		s = s[:maxBodySnippet] + "..."
	}
	return s
}
