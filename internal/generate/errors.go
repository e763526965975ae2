// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the generation call. Every error returned by a
// Generator wraps exactly one of them.
var (
	ErrCredential       = errors.New("missing or invalid API credential")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrService          = errors.New("generation service failure")
)

// classifyStatus maps an HTTP status from a provider to a sentinel error.
func classifyStatus(code int, detail string) error {
	lower := strings.ToLower(detail)
	var sentinel error
	switch {
	case code == http.StatusUnauthorized:
		sentinel = ErrCredential
	case code == http.StatusBadRequest && strings.Contains(lower, "api key"):
		sentinel = ErrCredential
	case code == http.StatusForbidden && strings.Contains(lower, "model"):
		sentinel = ErrModelUnavailable
	case code == http.StatusForbidden:
		sentinel = ErrCredential
	case code == http.StatusNotFound:
		sentinel = ErrModelUnavailable
	default:
		sentinel = ErrService
	}
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return fmt.Errorf("%w: status %d", sentinel, code)
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, code, detail)
}

// transportError wraps a failure that never produced an HTTP status.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out: %v", ErrService, err)
	}
	return fmt.Errorf("%w: %v", ErrService, err)
}

// UserMessage turns a generation error into the single line shown to the
// auditor. Unclassified errors are reported as service failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrCredential):
		return "API key belum diisi atau tidak valid. Periksa kembali API key Anda."
	case errors.Is(err, ErrModelUnavailable):
		return "Model AI tidak dikenal atau tidak dapat diakses dengan API key ini: " + detailOf(err)
	default:
		return "Terjadi kesalahan AI: " + detailOf(err)
	}
}

func detailOf(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrCredential, ErrModelUnavailable, ErrService} {
		msg = strings.TrimPrefix(msg, s.Error()+": ")
	}
	return msg
}
