// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: carousel/errors.go
// Summary: Error taxonomy for carousel construction and slot lookups.

package carousel

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by slot map lookups that miss the current window.
var ErrNotFound = errors.New("carousel: not found")

// ConfigurationError reports an invalid carousel setup detected at construction.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "carousel: " + e.Reason
	}
	return fmt.Sprintf("carousel: %s: %s", e.Field, e.Reason)
}

func configError(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
