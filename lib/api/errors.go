// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned for any HTTP 401 response. The
// backend means "no valid session"; the uniform client response is to
// return to the login screen and abandon the in-flight operation.
// Never retried.
var ErrUnauthenticated = errors.New("api: not authenticated")

// ErrAmbiguousCreate is returned when a create call got a 2xx response
// but the body could not produce the created entity (unparsable JSON,
// empty body, or a zero id). The operation possibly succeeded on the
// server; callers must reconcile by reloading the full collection
// rather than assuming either outcome.
var ErrAmbiguousCreate = errors.New("api: create response unusable, reload to reconcile")

// RequestError is a non-2xx, non-401 response. Body carries the raw
// response text for display; the backend writes plain-text error
// messages.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: server returned %d", e.Status)
	}
	return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Body)
}

// IsUnauthenticated reports whether err (or anything it wraps) is the
// 401 condition.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
