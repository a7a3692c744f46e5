// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mathexpr compiles textual math expressions ("x^2 + sin(x)",
// parametric pairs, vector-field components) into sampled numeric series
// for 2D and 3D plotting. Expressions run on an embedded ECMAScript engine;
// the grammar is ordinary arithmetic with the usual named functions and
// constants, free variables x, y, t, u, v.
package mathexpr

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dop251/goja"
)

// prelude exposes the math vocabulary as bare names inside the engine.
const prelude = `
var sin = Math.sin, cos = Math.cos, tan = Math.tan;
var asin = Math.asin, acos = Math.acos, atan = Math.atan, atan2 = Math.atan2;
var sinh = Math.sinh, cosh = Math.cosh, tanh = Math.tanh;
var sqrt = Math.sqrt, cbrt = Math.cbrt, abs = Math.abs, sign = Math.sign;
var exp = Math.exp, log = Math.log, ln = Math.log, log2 = Math.log2, log10 = Math.log10;
var floor = Math.floor, ceil = Math.ceil, round = Math.round;
var min = Math.min, max = Math.max, pow = Math.pow, hypot = Math.hypot;
var PI = Math.PI, pi = Math.PI, E = Math.E, e = Math.E;
`

// negPowerRe matches a minus sign directly before a simple power term.
var negPowerRe = regexp.MustCompile(`-\s*((?:\([^()]*\)|[0-9a-zA-Z_.]+)\s*\*\*\s*(?:\([^()]*\)|[0-9a-zA-Z_.]+))`)

// Compiled is one compiled expression, reusable across samples. It owns a
// private engine instance; sampling is single-threaded by contract.
type Compiled struct {
	expr string
	vm   *goja.Runtime
	prog *goja.Program
}

// Compile prepares an expression for repeated evaluation. The only
// preprocessing beyond the engine's own grammar is rewriting the caret
// power operator to the engine's exponentiation form.
func Compile(expr string) (*Compiled, error) {
	src := strings.TrimSpace(expr)
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}
	src = strings.ReplaceAll(src, "^", "**")
	// The engine rejects a minus directly before exponentiation ("-x**2").
	// Parenthesizing the power term preserves meaning for both unary and
	// binary minus, since a - x**2 == a - (x**2).
	src = negPowerRe.ReplaceAllString(src, "-($1)")

	prog, err := goja.Compile("expr", "("+src+")", true)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	vm := goja.New()
	if _, err := vm.RunString(prelude); err != nil {
		return nil, fmt.Errorf("engine prelude: %w", err)
	}
	return &Compiled{expr: expr, vm: vm, prog: prog}, nil
}

// Expr returns the original expression text.
func (c *Compiled) Expr() string { return c.expr }

// Eval evaluates the expression with the given free-variable bindings.
// Any evaluation failure, or a non-finite result, yields NaN for that
// sample; a single bad point must never abort a whole series.
func (c *Compiled) Eval(vars map[string]float64) float64 {
	for name, v := range vars {
		if err := c.vm.Set(name, v); err != nil {
			return math.NaN()
		}
	}
	val, err := c.vm.RunProgram(c.prog)
	if err != nil {
		return math.NaN()
	}
	f := val.ToFloat()
	if math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// EvalX is a convenience for single-variable series.
func (c *Compiled) EvalX(x float64) float64 {
	return c.Eval(map[string]float64{"x": x})
}

// CompileAll compiles a slice of expressions, failing on the first bad one.
func CompileAll(exprs []string) ([]*Compiled, error) {
	out := make([]*Compiled, 0, len(exprs))
	for _, e := range exprs {
		c, err := Compile(e)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
