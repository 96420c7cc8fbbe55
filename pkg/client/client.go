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

// Package client talks to a provider daemon over its HTTP surface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/codenotary/sap/pkg/api"
	"github.com/codenotary/sap/pkg/logger"
)

// SAPClient ...
type SAPClient interface {
	ServiceCard(ctx context.Context) (*ServiceCard, error)
	Hello(ctx context.Context) (*ProviderInfo, error)
	AllData(ctx context.Context) ([]*api.Object, error)
	Health(ctx context.Context) (*Health, error)
	Status(ctx context.Context) (*Status, error)
	Refresh(ctx context.Context, token string) (*RefreshAck, error)

	HealthCheck(ctx context.Context) error
	WaitForHealthCheck(ctx context.Context) (err error)

	WithOptions(options *Options) *sapClient
	WithLogger(logger logger.Logger) *sapClient
	WithHTTPClient(httpClient *http.Client) *sapClient

	GetOptions() *Options
}

type sapClient struct {
	Logger     logger.Logger
	Options    *Options
	httpClient *http.Client
}

// DefaultClient ...
func DefaultClient() SAPClient {
	return &sapClient{
		Logger:     logger.NewSimpleLogger("sapadmin", os.Stderr),
		Options:    DefaultOptions(),
		httpClient: &http.Client{},
	}
}

// NewSAPClient ...
func NewSAPClient(options *Options) (SAPClient, error) {
	u, err := url.Parse(options.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", options.ServerURL)
	}

	return DefaultClient().WithOptions(options), nil
}

func (c *sapClient) WithOptions(options *Options) *sapClient {
	c.Options = options
	return c
}

// WithLogger sets logger
func (c *sapClient) WithLogger(logger logger.Logger) *sapClient {
	c.Logger = logger
	return c
}

// WithHTTPClient overrides the underlying http client, usually to inject
// one with a custom transport in tests
func (c *sapClient) WithHTTPClient(httpClient *http.Client) *sapClient {
	c.httpClient = httpClient
	return c
}

func (c *sapClient) GetOptions() *Options {
	return c.Options
}

// ServiceCard returns the root document of the provider.
func (c *sapClient) ServiceCard(ctx context.Context) (*ServiceCard, error) {
	var card ServiceCard
	if err := c.get(ctx, "/", nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Hello returns the provider information.
func (c *sapClient) Hello(ctx context.Context) (*ProviderInfo, error) {
	var info ProviderInfo
	if err := c.get(ctx, "/hello", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AllData returns the full cached data set of the provider.
func (c *sapClient) AllData(ctx context.Context) ([]*api.Object, error) {
	var objects []*api.Object
	if err := c.get(ctx, "/all_data", nil, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// Health returns the health probe reply.
func (c *sapClient) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.get(ctx, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Status returns the refresh runner status.
func (c *sapClient) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.get(ctx, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Refresh asks the provider to refresh its cache out of schedule. The token
// is only sent when non empty.
func (c *sapClient) Refresh(ctx context.Context, token string) (*RefreshAck, error) {
	query := url.Values{}
	if token != "" {
		query.Set("token", token)
	}

	var ack RefreshAck
	if err := c.get(ctx, "/refresh", query, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *sapClient) HealthCheck(ctx context.Context) error {
	start := time.Now()

	health, err := c.Health(ctx)
	if err != nil {
		return err
	}

	if health.Status != "ok" {
		return ErrHealthCheckFailed
	}

	c.Logger.Debugf("health-check finished in %s", time.Since(start))

	return nil
}

func (c *sapClient) WaitForHealthCheck(ctx context.Context) (err error) {
	for i := 0; i < c.Options.HealthCheckRetries+1; i++ {
		if err = c.HealthCheck(ctx); err == nil {
			c.Logger.Debugf("health check succeeded %v", c.Options)
			return nil
		}

		c.Logger.Debugf("health check failed: %v", err)

		if c.Options.HealthCheckRetries > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
		}
	}
	return err
}

func (c *sapClient) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	if c.Options.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Options.RequestTimeout)
		defer cancel()
	}

	target := strings.TrimRight(c.Options.ServerURL, "/") + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return decodeServerError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding %s reply: %w", endpoint, err)
	}
	return nil
}

// decodeServerError turns an error reply into a ServerError, falling back
// to the generic status text when the body is not the usual error document.
func decodeServerError(statusCode int, body []byte) error {
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err == nil && reply.Error != "" {
		return &ServerError{StatusCode: statusCode, Message: reply.Error}
	}
	return &ServerError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
}
