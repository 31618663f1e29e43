// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package api implements the generic REST transport between the console and the
PIM backend.

Architecture:

  - Client: One method per HTTP verb (Get/Post/Put/Delete), all funneling into
    a single do() that handles rate limiting, auth, envelope decoding, and
    error extraction.
  - Envelopes: Every backend response is wrapped — {"data": ...} on success,
    {"error": {...}} on failure. Services never see raw bodies.
  - No retries: a failed call surfaces as an error and the operation is
    abandoned; recovery is the operator's decision.

Entity services compose this client with their DTO mappers; no service talks
to net/http directly.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/config"
)

// Client is the shared HTTP transport for all entity services.
//
// # Concurrency
//
// Client is safe for concurrent use; the wizard issues its reference-data
// lookups through one instance in parallel.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient builds a [Client] from the loaded configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		token:      cfg.APIToken,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:     logger,
		now:        time.Now,
	}
}

// Get issues a GET request and decodes the success envelope into out.
func (client *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return client.do(ctx, http.MethodGet, path, params, nil, out)
}

// Post issues a POST request with a JSON body.
func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	return client.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body and optional query parameters.
func (client *Client) Put(ctx context.Context, path string, params url.Values, body, out any) error {
	return client.do(ctx, http.MethodPut, path, params, body, out)
}

// Delete issues a DELETE request. Responses carry no payload.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one request/response cycle against the backend.
func (client *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	// Fail fast on an expired bearer token instead of collecting a 401.
	if client.token != "" && tokenExpired(client.token, client.now()) {
		return apperr.TokenExpired()
	}

	if err := client.limiter.Wait(ctx); err != nil {
		return apperr.Transport(err)
	}

	endpoint := client.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return apperr.Internal(err)
		}
		reader = buf
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperr.Internal(err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	started := client.now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Transport(err)
	}
	defer func() { _ = response.Body.Close() }()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Transport(err)
	}

	client.logger.Debug("api_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Duration("elapsed", client.now().Sub(started)),
	)

	if response.StatusCode >= 400 {
		return decodeError(response.StatusCode, payload)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	var envelope successEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return apperr.Internal(err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
