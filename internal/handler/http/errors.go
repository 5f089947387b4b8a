// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header is
	// missing or does not match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	ErrInvalidJSON   = errors.New("invalid JSON was passed")
	ErrInvalidLimit  = errors.New("invalid limit")
	ErrInvalidCursor = errors.New("invalid cursor")
)
