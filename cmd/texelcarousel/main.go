// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelcarousel/main.go
// Summary: Terminal carousel over a directory of files or a saved item store.
// Usage: texelcarousel -dir ./src, or texelcarousel -db items.db to reopen a
// stored set at the last centred item.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/framegrace/texelcarousel/carousel"
	"github.com/framegrace/texelcarousel/config"
	"github.com/framegrace/texelcarousel/internal/devshell"
	"github.com/framegrace/texelcarousel/internal/preview"
	"github.com/framegrace/texelcarousel/internal/theming"
	"github.com/framegrace/texelcarousel/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelcarousel", flag.ContinueOnError)
	dir := fs.String("dir", "", "Directory whose files become cards")
	dbPath := fs.String("db", "", "SQLite item store (default: store.db_path, then the user cache dir)")
	save := fs.Bool("save", false, "With -dir, replace the store contents with the loaded files")
	appendItems := fs.Bool("append", false, "With -dir, add the loaded files to the end of the store")
	var binds [][2]string
	fs.Func("bind", "Persist a key binding, key=control (repeatable), e.g. j=carousel.next", func(v string) error {
		key, control, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=control, got %q", v)
		}
		if !knownControl(control) {
			return fmt.Errorf("unknown control %q", control)
		}
		binds = append(binds, [2]string{key, control})
		return nil
	})
	configPath := fs.String("config", "", "Config file (default: <user config dir>/texelcarousel/texelcarousel.json)")
	logPath := fs.String("log", "", "Log file (default: <user cache dir>/texelcarousel/texelcarousel.log)")
	session := fs.String("session", "", "Session name used to remember the centred item")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	closeLog, err := setupLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if *configPath != "" {
		if err := config.SetPath(*configPath); err != nil {
			return fmt.Errorf("load config %s: %w", *configPath, err)
		}
	} else if err := config.Err(); err != nil {
		log.Printf("Config: using defaults after load error: %v", err)
	}
	for _, b := range binds {
		if err := config.Bind(b[0], b[1]); err != nil {
			return fmt.Errorf("bind %s: %w", b[0], err)
		}
		log.Printf("Config: bound %s to %s", b[0], b[1])
	}
	settings, err := config.LoadSettings(config.System())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *session != "" {
		settings.Session = *session
	}

	ctx := context.Background()
	db, err := openStore(*dbPath, settings.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	mode := keepStore
	switch {
	case *save && *appendItems:
		return errors.New("-save and -append are mutually exclusive")
	case *save:
		mode = replaceStore
	case *appendItems:
		mode = appendStore
	}
	items, start, err := loadItems(ctx, db, *dir, mode, settings)
	if err != nil {
		return err
	}

	theme := theming.FromConfig(config.System())
	log.Printf("Carousel: starting with %d items at %d", len(items), start)
	centre, err := devshell.Run(devshell.Options{
		Items:          items,
		Slots:          settings.Slots,
		CardWidth:      settings.CardWidth,
		CardHeight:     settings.CardHeight,
		Duration:       settings.Duration,
		Easing:         settings.Easing,
		HighlightStyle: settings.HighlightStyle,
		Theme:          &theme,
		Keys:           settings.Keys,
		StartIndex:     start,
	})
	if err != nil {
		return err
	}

	if *dir == "" || mode == replaceStore {
		if err := db.SaveCentre(ctx, settings.Session, centre); err != nil {
			log.Printf("Store: failed to save centre: %v", err)
		}
	}
	log.Printf("Carousel: stopped at %d", centre)
	return nil
}

func setupLog(path string) (func(), error) {
	if path == "" {
		def, err := config.DataPath("texelcarousel.log")
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = def
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}

func openStore(flagPath, configured string) (*store.Store, error) {
	path := flagPath
	if path == "" {
		path = configured
	}
	if path == "" {
		def, err := config.DataPath("items.db")
		if err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
		path = def
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return db, nil
}

func knownControl(id string) bool {
	switch id {
	case carousel.ControlNext, carousel.ControlPrev, carousel.ControlRelayout:
		return true
	}
	return false
}

type storeMode int

const (
	keepStore storeMode = iota
	replaceStore
	appendStore
)

// loadItems reads cards from dir when given, otherwise from the store, and
// picks the start index remembered for the session.
func loadItems(ctx context.Context, db *store.Store, dir string, mode storeMode, settings config.Settings) ([]preview.Item, int, error) {
	if dir != "" {
		items, err := preview.LoadDir(dir, settings.MaxPreview)
		if err != nil {
			return nil, 0, fmt.Errorf("load %s: %w", dir, err)
		}
		switch mode {
		case replaceStore:
			if err := db.Replace(ctx, items); err != nil {
				return nil, 0, fmt.Errorf("save items: %w", err)
			}
		case appendStore:
			if err := db.Add(ctx, items...); err != nil {
				return nil, 0, fmt.Errorf("append items: %w", err)
			}
		}
		return items, 0, nil
	}

	items, err := db.Items(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read store: %w", err)
	}
	if len(items) == 0 {
		return nil, 0, errors.New("the store is empty; run with -dir <path> -save first")
	}
	start, ok, err := db.LoadCentre(ctx, settings.Session)
	if err != nil {
		log.Printf("Store: failed to load centre: %v", err)
	}
	if !ok || start < 0 || start >= len(items) {
		start = 0
	}
	return items, start, nil
}
