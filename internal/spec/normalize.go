// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spec

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// MATH CONSTANT NORMALIZATION
// =============================================================================
//
// Upstream payloads sometimes contain bare math constants where JSON expects
// numbers: {"domain": [-PI, PI]} or {"t": [0, 2*PI]}. JSON parsers reject
// those, so the tokens are rewritten to numeric literals before parsing.
// String literals are protected via placeholder round-tripping so a label
// containing the literal word "PI" is not corrupted.

var (
	// stringLiteralRe matches JSON string literals including escapes.
	stringLiteralRe = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

	// nTimesPiRe matches forms like 2*PI or 0.5*PI.
	nTimesPiRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\*\s*PI\b`)

	// piOverNRe matches forms like PI/2 or PI/3.5.
	piOverNRe = regexp.MustCompile(`\bPI\s*/\s*(\d+(?:\.\d+)?)`)

	barePiRe = regexp.MustCompile(`\bPI\b`)
	bareERe  = regexp.MustCompile(`\bE\b`)
)

// NormalizeMathConstants rewrites bare PI/E tokens (and N*PI, PI/N forms) in
// raw JSON text to numeric literals, leaving string literal contents intact.
func NormalizeMathConstants(raw string) string {
	if !strings.Contains(raw, "PI") && !bareERe.MatchString(raw) {
		return raw
	}

	// Pull string literals out so substitutions cannot touch them.
	var literals []string
	protected := stringLiteralRe.ReplaceAllStringFunc(raw, func(m string) string {
		literals = append(literals, m)
		return fmt.Sprintf("\x00STR%d\x00", len(literals)-1)
	})

	protected = nTimesPiRe.ReplaceAllStringFunc(protected, func(m string) string {
		sub := nTimesPiRe.FindStringSubmatch(m)
		n, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return formatConst(n * math.Pi)
	})
	protected = piOverNRe.ReplaceAllStringFunc(protected, func(m string) string {
		sub := piOverNRe.FindStringSubmatch(m)
		n, err := strconv.ParseFloat(sub[1], 64)
		if err != nil || n == 0 {
			return m
		}
		return formatConst(math.Pi / n)
	})
	protected = barePiRe.ReplaceAllString(protected, formatConst(math.Pi))
	protected = bareERe.ReplaceAllString(protected, formatConst(math.E))

	// Restore the protected string literals.
	for i, lit := range literals {
		protected = strings.Replace(protected, fmt.Sprintf("\x00STR%d\x00", i), lit, 1)
	}
	return protected
}

// formatConst renders a constant with enough precision for round-tripping.
func formatConst(f float64) string {
	return strconv.FormatFloat(f, 'g', 15, 64)
}
