// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/errors.go
// Summary: Sentinel errors for preview loading.

package preview

import "errors"

// ErrBinary marks files that cannot be shown as text.
var ErrBinary = errors.New("preview: binary content")
