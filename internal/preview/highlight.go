// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/preview/highlight.go
// Summary: Chroma tokenisation of card bodies into tcell-styled lines.

package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

const defaultStyleName = "catppuccin-mocha"

// Cell is one styled rune of a highlighted line.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a lexer by language name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight splits the item body into lines of styled cells. base is applied
// to text the style leaves uncoloured.
func Highlight(item Item, styleName string, base tcell.Style) [][]Cell {
	if item.Body == "" {
		return nil
	}
	style := chromaStyle(styleName)
	lexer := chroma.Coalesce(getLexer(item.Language, item.Body))

	tokens, err := chroma.Tokenise(lexer, nil, item.Body)
	if err != nil {
		return plainLines(item.Body, base)
	}

	baseColour := style.Get(chroma.Text).Colour
	lines := [][]Cell{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		cellStyle := tokenStyle(style.Get(tok.Type), baseColour, base)
		for _, r := range tok.Value {
			if r == '\n' {
				lines = append(lines, nil)
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Cell{Ch: r, Style: cellStyle})
		}
	}
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	return st
}

func plainLines(body string, base tcell.Style) [][]Cell {
	var out [][]Cell
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		row := make([]Cell, 0, len(line))
		for _, r := range line {
			row = append(row, Cell{Ch: r, Style: base})
		}
		out = append(out, row)
	}
	return out
}
