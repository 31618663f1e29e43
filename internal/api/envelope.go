// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package api

import (
	"encoding/json"

	"github.com/buihoanglan/pivora/internal/platform/apperr"
)

// successEnvelope is the JSON envelope every successful backend response uses.
type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope is the JSON envelope for backend error responses.
type errorEnvelope struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details []apperr.FieldError `json:"details"`
	} `json:"error"`
}

// List is the payload shape of every backend list endpoint:
// {"data": {"items": [...], "total": n}}.
type List[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// decodeError converts an error response body into an [apperr.AppError].
//
// # Message Extraction
//
// The chain is: envelope error.message, then HTTP status text, then a generic
// fallback — non-JSON bodies (proxies, load balancers) never leak to the
// operator verbatim.
func decodeError(status int, body []byte) *apperr.AppError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return apperr.API(status, envelope.Error.Code, envelope.Error.Message, envelope.Error.Details...)
	}
	return apperr.API(status, "", "")
}
