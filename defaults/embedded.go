// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import _ "embed"

//go:embed texelcarousel.json
var systemConfig []byte

// SystemConfig returns the embedded texelcarousel.json.
func SystemConfig() ([]byte, error) {
	out := make([]byte, len(systemConfig))
	copy(out, systemConfig)
	return out, nil
}
