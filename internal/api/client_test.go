// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/config"
)

func newClient(t *testing.T, handler http.Handler, token string) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		APIBaseURL:     server.URL,
		APIToken:       token,
		RequestTimeout: 5 * time.Second,
		RateLimit:      1000,
		RateBurst:      1000,
	}
	return api.NewClient(cfg, slog.Default())
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": expiry.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

/*
TestGet_DecodesDataEnvelope unwraps {"data": ...} into the out value and sends
the standard headers.
*/
func TestGet_DecodesDataEnvelope(t *testing.T) {
	var gotAccept, gotRequestID, gotAuth string

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAccept = request.Header.Get("Accept")
		gotRequestID = request.Header.Get("X-Request-ID")
		gotAuth = request.Header.Get("Authorization")
		assert.Equal(t, "25", request.URL.Query().Get("limit"))

		_, _ = writer.Write([]byte(`{"data": {"id": "it-1", "name": "Product"}}`))
	})

	token := signedToken(t, time.Now().Add(time.Hour))
	client := newClient(t, handler, token)

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	params := url.Values{}
	params.Set("limit", "25")
	err := client.Get(context.Background(), "/item-types/it-1", params, &out)

	require.NoError(t, err)
	assert.Equal(t, "it-1", out.ID)
	assert.Equal(t, "Product", out.Name)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Bearer "+token, gotAuth)
}

/*
TestGet_DecodesListEnvelope unwraps the nested list payload.
*/
func TestGet_DecodesListEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"data": {"items": [{"id": "a"}, {"id": "b"}], "total": 17}}`))
	})
	client := newClient(t, handler, "")

	var list api.List[struct {
		ID string `json:"id"`
	}]
	err := client.Get(context.Background(), "/items", nil, &list)

	require.NoError(t, err)
	assert.Equal(t, 17, list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].ID)
}

/*
TestErrorEnvelope_Extraction decodes backend error envelopes into AppError,
including field-level details.
*/
func TestErrorEnvelope_Extraction(t *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"error": {"code": "VALIDATION_ERROR", "message": "Validation failed",
			"details": [{"field": "itemTypeId", "message": "This field is required"}]}}`))
	})
	client := newClient(t, handler, "")

	err := client.Post(context.Background(), "/items", map[string]any{}, nil)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "Validation failed", ae.Message)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "itemTypeId", ae.Details[0].Field)
}

/*
TestErrorEnvelope_NonJSONBody falls back to the status text when a proxy
answers with something that is not the backend's envelope.
*/
func TestErrorEnvelope_NonJSONBody(t *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		_, _ = writer.Write([]byte("<html>upstream unavailable</html>"))
	})
	client := newClient(t, handler, "")

	err := client.Get(context.Background(), "/items", nil, &struct{}{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "API_ERROR", ae.Code)
	assert.Equal(t, "Bad Gateway", ae.Message)
	assert.NotContains(t, ae.Message, "html")
}

/*
TestExpiredToken_FailsFast short-circuits before any network round trip when
the bearer token's exp claim is in the past.
*/
func TestExpiredToken_FailsFast(t *testing.T) {
	reached := false
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached = true
	})
	client := newClient(t, handler, signedToken(t, time.Now().Add(-time.Hour)))

	err := client.Get(context.Background(), "/items", nil, &struct{}{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_EXPIRED", ae.Code)
	assert.False(t, reached, "expired token must not reach the backend")
}

/*
TestOpaqueToken_PassesThrough sends non-JWT tokens as-is; expiry is the
backend's problem for those.
*/
func TestOpaqueToken_PassesThrough(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAuth = request.Header.Get("Authorization")
		_, _ = writer.Write([]byte(`{"data": {}}`))
	})
	client := newClient(t, handler, "pat-opaque-token")

	err := client.Get(context.Background(), "/items", nil, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer pat-opaque-token", gotAuth)
}

/*
TestDelete_NoContent tolerates empty 204 responses.
*/
func TestDelete_NoContent(t *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		writer.WriteHeader(http.StatusNoContent)
	})
	client := newClient(t, handler, "")

	assert.NoError(t, client.Delete(context.Background(), "/items/item-1"))
}

/*
TestPost_EncodesBody round-trips the JSON request body.
*/
func TestPost_EncodesBody(t *testing.T) {
	var received map[string]any
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(request.Body).Decode(&received))
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"data": {"id": "item-1"}}`))
	})
	client := newClient(t, handler, "")

	var out struct {
		ID string `json:"id"`
	}
	err := client.Post(context.Background(), "/items", map[string]any{"itemTypeId": "it-1"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "item-1", out.ID)
	assert.Equal(t, "it-1", received["itemTypeId"])
}
