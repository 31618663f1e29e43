// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package api

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether token is a JWT whose "exp" claim is in the past.
//
// The token is parsed without signature verification — the console is not the
// verifying party, it only wants to fail fast with a TOKEN_EXPIRED error
// instead of burning a round trip on a guaranteed 401. Opaque (non-JWT)
// tokens are passed through untouched.
func tokenExpired(token string, now time.Time) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}

	return expiry.Before(now)
}
