// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// MATH DELIMITERS
// =============================================================================
//
// Seven delimiter pairs are recognized. Dollar forms are ambiguous with
// currency and prose, so they additionally require boundary characters
// around the span and content that passes the looksLikeMath heuristic.
// Backslash forms are explicit author intent and are accepted as-is.

type mathDelimiter struct {
	left      string
	right     string
	display   bool // display (block) vs inline typesetting
	guarded   bool // apply boundary + looksLikeMath checks
	wrapKeep  bool // keep the delimiter itself in the payload (\ce, \pu)
}

// Order matters: longer and more specific delimiters first so "$$" is never
// consumed as two "$" and "\[" wins over nothing.
var mathDelimiters = []mathDelimiter{
	{left: "$$", right: "$$", display: true, guarded: true},
	{left: `\[`, right: `\]`, display: true},
	{left: `\(`, right: `\)`, display: false},
	{left: `\begin{equation}`, right: `\end{equation}`, display: true},
	{left: `\ce{`, right: `}`, display: false, wrapKeep: true},
	{left: `\pu{`, right: `}`, display: false, wrapKeep: true},
	{left: "$", right: "$", display: false, guarded: true},
}

// ScanMath returns every math token in src in source order.
func ScanMath(src string) []Block {
	var blocks []Block
	pos := 0
	for pos < len(src) {
		b := matchMathAt(src, pos)
		if b == nil {
			// Skip to the next plausible trigger byte.
			next := strings.IndexAny(src[pos+1:], "$\\")
			if next < 0 {
				break
			}
			pos = pos + 1 + next
			continue
		}
		blocks = append(blocks, *b)
		pos = b.End
	}
	return blocks
}

// matchMathAt tries every delimiter pair at the scan position. It only
// advances byte-by-byte between trigger characters, so pos is expected to
// sit on '$' or '\\' for a match to be possible.
func matchMathAt(src string, pos int) *Block {
	rest := src[pos:]
	for _, d := range mathDelimiters {
		if !strings.HasPrefix(rest, d.left) {
			continue
		}
		if d.left == "$" && strings.HasPrefix(rest, "$$") {
			// First character of a $$ pair; the $$ delimiter already had its
			// chance, so a lone-$ match here would split the pair.
			continue
		}
		contentStart := len(d.left)
		end := findClosing(rest, contentStart, d)
		if end < 0 {
			continue
		}
		content := rest[contentStart:end]
		raw := rest[:end+len(d.right)]
		if d.guarded {
			if !hasMathBoundary(src, pos, pos+len(raw)) {
				continue
			}
			if !LooksLikeMath(content) {
				continue
			}
		}
		payload := strings.TrimSpace(content)
		if d.wrapKeep {
			// \ce{...} and \pu{...} are commands, not bare delimiters; the
			// typesetter needs the whole command.
			payload = raw
		}
		if payload == "" {
			continue
		}
		return &Block{
			Kind:    KindMath,
			Raw:     raw,
			Payload: payload,
			Start:   pos,
			End:     pos + len(raw),
			Display: d.display,
		}
	}
	return nil
}

// findClosing locates the right delimiter, honoring brace nesting for the
// \ce{}/\pu{} forms. Returns the content end index within rest, or -1.
func findClosing(rest string, from int, d mathDelimiter) int {
	if d.right == "}" {
		depth := 1
		for i := from; i < len(rest); i++ {
			switch rest[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		return -1
	}
	if d.left == "$" {
		// A closing single $ must not be the first half of a $$ pair.
		for i := from; i < len(rest); i++ {
			if rest[i] != '$' {
				continue
			}
			if i+1 < len(rest) && rest[i+1] == '$' {
				return -1
			}
			if i == from {
				return -1 // empty span
			}
			return i
		}
		return -1
	}
	idx := strings.Index(rest[from:], d.right)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// hasMathBoundary checks that the characters immediately before and after
// the delimiter span belong to the boundary allow-list (whitespace,
// punctuation, CJK, or the string edge). This keeps '$' inside identifiers
// or file paths from triggering math mode.
func hasMathBoundary(src string, start, end int) bool {
	before := rune(0)
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(src[:start])
	}
	after := rune(0)
	if end < len(src) {
		after, _ = utf8.DecodeRuneInString(src[end:])
	}
	return isBoundaryRune(before) && isBoundaryRune(after)
}

// isBoundaryRune reports whether r may sit adjacent to a math span. The
// zero rune means the string edge.
func isBoundaryRune(r rune) bool {
	if r == 0 {
		return true
	}
	if unicode.IsSpace(r) || unicode.IsPunct(r) {
		return true
	}
	return isCJK(r)
}

// isCJK reports whether r belongs to a CJK script block.
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// =============================================================================
// MATH CONTENT HEURISTIC
// =============================================================================

var (
	latexCommandRe = regexp.MustCompile(`\\[a-zA-Z]+`)
	// An operator flanked by operands: "x + 1", "a*b", "2/3".
	infixRe = regexp.MustCompile(`[0-9a-zA-Z)\]]\s*[+\-*/=<>]\s*[0-9a-zA-Z(\[]`)
	// Subscript/superscript/fraction-ish patterns: "x^2", "a_1", "1/2".
	scriptRe = regexp.MustCompile(`[a-zA-Z0-9][_^][{a-zA-Z0-9]|\d+/\d+`)
)

// LooksLikeMath classifies delimiter content as a formula or as ordinary
// prose. Dollar delimiters are the only ambiguous ones — "Price is $5 and
// $10 total" must not typeset — so they run this check before matching.
func LooksLikeMath(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}

	// Mostly-CJK content is prose that happened to sit between dollars.
	var cjk, letters int
	for _, r := range trimmed {
		if isCJK(r) {
			cjk++
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters++
		}
	}
	if letters > 0 && cjk*2 > letters {
		return false
	}

	if latexCommandRe.MatchString(trimmed) {
		return true
	}
	if scriptRe.MatchString(trimmed) {
		return true
	}
	if infixRe.MatchString(trimmed) {
		return true
	}
	// Single-letter variables like $x$ or $n$ are fine.
	if len(trimmed) <= 2 && !strings.ContainsAny(trimmed, "0123456789") {
		for _, r := range trimmed {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	}
	return false
}
