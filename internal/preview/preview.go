// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/preview.go
// Summary: Card content for file carousels: loading, language detection.
// Usage: LoadDir builds the item list the CLI hands to the carousel engine.

package preview

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DefaultMaxBytes caps how much of a file a card reads.
const DefaultMaxBytes = 8 << 10

// Item is one carousel entry.
type Item struct {
	Title    string
	Body     string
	Language string
	Path     string
}

// FromFile reads up to maxBytes of path and detects its language.
func FromFile(path string, maxBytes int) (Item, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	f, err := os.Open(path)
	if err != nil {
		return Item{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, int64(maxBytes)))
	if err != nil {
		return Item{}, fmt.Errorf("read %s: %w", path, err)
	}
	if enry.IsBinary(content) {
		return Item{}, fmt.Errorf("%s: %w", path, ErrBinary)
	}
	return Item{
		Title:    filepath.Base(path),
		Body:     strings.ReplaceAll(string(content), "\t", "    "),
		Language: enry.GetLanguage(filepath.Base(path), content),
		Path:     path,
	}, nil
}

// LoadDir returns an item for every readable text file directly inside dir,
// sorted by name. Hidden, vendored and binary files are skipped.
func LoadDir(dir string, maxBytes int) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var items []Item
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") || enry.IsVendor(name) {
			continue
		}
		item, err := FromFile(filepath.Join(dir, name), maxBytes)
		if err != nil {
			log.Printf("Preview: skipping %s: %v", name, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
