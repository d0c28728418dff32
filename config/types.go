// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config sections.
// Notes: JSON numbers decode as float64, but sections built in code may hold
// ints, so numeric getters accept both as well as numeric strings.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// Section returns the named section or nil if missing or not an object.
func (c Config) Section(sectionName string) Section {
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills keys missing from a section, creating it if needed.
// Existing values are never overwritten.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) value(sectionName, key string) (interface{}, bool) {
	v, ok := c.Section(sectionName)[key]
	return v, ok
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// GetString retrieves a string value, or defaultValue when absent or not a string.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.value(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetFloat retrieves a numeric value.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	if v, ok := c.value(sectionName, key); ok {
		if f, ok := number(v); ok {
			return f
		}
	}
	return defaultValue
}

// GetInt retrieves a numeric value truncated to an int.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	if v, ok := c.value(sectionName, key); ok {
		if f, ok := number(v); ok {
			return int(f)
		}
	}
	return defaultValue
}

// GetDuration retrieves a millisecond count and returns it as a Duration.
func (c Config) GetDuration(sectionName, key string, defaultValue time.Duration) time.Duration {
	if v, ok := c.value(sectionName, key); ok {
		if ms, ok := number(v); ok && ms >= 0 {
			return time.Duration(ms * float64(time.Millisecond))
		}
	}
	return defaultValue
}

// GetStringMap returns the string-valued entries of a section. Non-string
// values are skipped.
func (c Config) GetStringMap(sectionName string) map[string]string {
	section := c.Section(sectionName)
	out := make(map[string]string, len(section))
	for key, val := range section {
		if s, ok := val.(string); ok {
			out[key] = s
		}
	}
	return out
}
