// Copyright 2024 The dhall-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package whnf

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dhall-lang/dhall-go/ast"
)

// builtinArity is the number of arguments each reducible builtin consumes
// before reduceBuiltin might fire. Builtins not listed either never reduce
// applied (the basic type constructors) or reduce as soon as one argument
// arrives via a case in reduceBuiltin guarded by its own length check.
var builtinArity = map[ast.BuiltinID]int{
	ast.NaturalIsZero:     1,
	ast.NaturalEven:       1,
	ast.NaturalOdd:        1,
	ast.NaturalToInteger:  1,
	ast.NaturalShow:       1,
	ast.NaturalSubtract:   2,
	ast.NaturalBuild:      1,
	ast.NaturalFold:       4,
	ast.IntegerToDouble:   1,
	ast.IntegerShow:       1,
	ast.IntegerNegate:     1,
	ast.IntegerClamp:      1,
	ast.DoubleShow:        1,
	ast.TextShow:          1,
	ast.ListBuild:         2,
	ast.ListFold:          5,
	ast.ListLength:        2,
	ast.ListHead:          2,
	ast.ListLast:          2,
	ast.ListIndexed:       2,
	ast.ListReverse:       2,
	ast.OptionalBuild:     2,
	ast.OptionalFold:      5,
}

// reduceBuiltin attempts to fire the reduction rule for a builtin given
// exactly builtinArity[id] arguments (in application order). The caller
// is responsible for slicing args down to that length and reapplying any
// leftover arguments to whatever this returns. It reports false when the
// arguments aren't yet concrete enough for the rule to match, in which
// case the caller reassembles the (still weak-head-normal) spine.
func reduceBuiltin(id ast.BuiltinID, args []ast.Expr) (ast.Expr, bool) {
	switch id {
	case ast.NaturalIsZero:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.NaturalLit); ok {
			return &ast.BoolLit{Val: isZero(n.Val)}, true
		}

	case ast.NaturalEven:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.NaturalLit); ok {
			return &ast.BoolLit{Val: toBigInt(n.Val).Bit(0) == 0}, true
		}

	case ast.NaturalOdd:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.NaturalLit); ok {
			return &ast.BoolLit{Val: toBigInt(n.Val).Bit(0) == 1}, true
		}

	case ast.NaturalToInteger:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.NaturalLit); ok {
			return &ast.IntegerLit{Val: n.Val}, true
		}

	case ast.NaturalShow:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.NaturalLit); ok {
			return ast.NewText(toBigInt(n.Val).String()), true
		}

	case ast.NaturalSubtract:
		if len(args) < 2 {
			return nil, false
		}
		x, xok := WHNF(args[0]).(*ast.NaturalLit)
		if xok && isZero(x.Val) {
			return args[1], true
		}
		y, yok := WHNF(args[1]).(*ast.NaturalLit)
		if xok && yok {
			return &ast.NaturalLit{Val: subNat(y.Val, x.Val)}, true
		}

	case ast.NaturalBuild:
		if len(args) < 1 {
			return nil, false
		}
		g := args[0]
		succ := &ast.Lam{Label: "n", Type: ast.NewBuiltin(ast.NaturalType), Body: &ast.BinaryExpr{
			Op: ast.PlusOp, L: ast.NewVar("n", 0), R: ast.NewNatural(1),
		}}
		spine := rebuildApp(g, []ast.Expr{ast.NewBuiltin(ast.NaturalType), succ, ast.NewNatural(0)})
		return spine, true

	case ast.NaturalFold:
		if len(args) < 4 {
			return nil, false
		}
		n, ok := WHNF(args[0]).(*ast.NaturalLit)
		if !ok {
			return nil, false
		}
		succ, zero := args[2], args[3]
		k := toBigInt(n.Val)
		acc := zero
		one := big.NewInt(1)
		for i := new(big.Int); i.Cmp(k) < 0; i.Add(i, one) {
			acc = &ast.App{Fn: succ, Arg: acc}
		}
		return acc, true

	case ast.IntegerToDouble:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.IntegerLit); ok {
			f := new(big.Float).SetInt(toBigInt(n.Val))
			v, _ := f.Float64()
			return &ast.DoubleLit{Bits: math.Float64bits(v)}, true
		}

	case ast.IntegerShow:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.IntegerLit); ok {
			sign := "+"
			if n.Val.Negative {
				sign = "-"
			}
			abs := new(big.Int).Abs(toBigInt(n.Val))
			return ast.NewText(sign + abs.String()), true
		}

	case ast.IntegerNegate:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.IntegerLit); ok {
			return &ast.IntegerLit{Val: negate(n.Val)}, true
		}

	case ast.IntegerClamp:
		if len(args) < 1 {
			return nil, false
		}
		if n, ok := WHNF(args[0]).(*ast.IntegerLit); ok {
			if n.Val.Negative {
				return ast.NewNatural(0), true
			}
			return &ast.NaturalLit{Val: n.Val}, true
		}

	case ast.DoubleShow:
		if len(args) < 1 {
			return nil, false
		}
		if d, ok := WHNF(args[0]).(*ast.DoubleLit); ok {
			return ast.NewText(showDouble(d.Bits)), true
		}

	case ast.TextShow:
		if len(args) < 1 {
			return nil, false
		}
		t := normalizeText(WHNF(args[0]))
		if lit, ok := t.(*ast.TextLit); ok && len(lit.Chunks) == 0 {
			return ast.NewText(quoteText(lit.Suffix)), true
		}

	case ast.ListBuild:
		if len(args) < 2 {
			return nil, false
		}
		a, g := args[0], args[1]
		listA := &ast.App{Fn: ast.NewBuiltin(ast.ListType), Arg: a}
		cons := &ast.Lam{Label: "x", Type: a, Body: &ast.Lam{
			Label: "xs", Type: ast.Shift(1, ast.Var{Name: "x", Index: 0}, listA),
			Body: &ast.BinaryExpr{
				Op: ast.ListAppendOp,
				L:  &ast.NEList{Elems: []ast.Expr{ast.NewVar("x", 0)}},
				R:  ast.NewVar("xs", 0),
			},
		}}
		nil_ := &ast.EmptyList{Type: listA}
		return rebuildApp(g, []ast.Expr{listA, cons, nil_}), true

	case ast.ListFold:
		if len(args) < 5 {
			return nil, false
		}
		xs := WHNF(args[1])
		cons, nilv := args[3], args[4]
		switch l := xs.(type) {
		case *ast.EmptyList:
			return nilv, true
		case *ast.NEList:
			acc := nilv
			for i := len(l.Elems) - 1; i >= 0; i-- {
				acc = &ast.App{Fn: &ast.App{Fn: cons, Arg: l.Elems[i]}, Arg: acc}
			}
			return acc, true
		}

	case ast.ListLength:
		if len(args) < 2 {
			return nil, false
		}
		switch l := WHNF(args[1]).(type) {
		case *ast.EmptyList:
			return ast.NewNatural(0), true
		case *ast.NEList:
			return ast.NewNatural(uint64(len(l.Elems))), true
		}

	case ast.ListHead:
		if len(args) < 2 {
			return nil, false
		}
		a := args[0]
		switch l := WHNF(args[1]).(type) {
		case *ast.EmptyList:
			return &ast.App{Fn: ast.NewBuiltin(ast.OptionalNone), Arg: a}, true
		case *ast.NEList:
			return &ast.Some{Value: l.Elems[0]}, true
		}

	case ast.ListLast:
		if len(args) < 2 {
			return nil, false
		}
		a := args[0]
		switch l := WHNF(args[1]).(type) {
		case *ast.EmptyList:
			return &ast.App{Fn: ast.NewBuiltin(ast.OptionalNone), Arg: a}, true
		case *ast.NEList:
			return &ast.Some{Value: l.Elems[len(l.Elems)-1]}, true
		}

	case ast.ListIndexed:
		if len(args) < 2 {
			return nil, false
		}
		a := args[0]
		entryType := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
			"index": ast.NewBuiltin(ast.NaturalType),
			"value": a,
		}}
		switch l := WHNF(args[1]).(type) {
		case *ast.EmptyList:
			return &ast.EmptyList{Type: &ast.App{Fn: ast.NewBuiltin(ast.ListType), Arg: entryType}}, true
		case *ast.NEList:
			elems := make([]ast.Expr, len(l.Elems))
			for i, e := range l.Elems {
				elems[i] = &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
					"index": ast.NewNatural(uint64(i)),
					"value": e,
				}}
			}
			return &ast.NEList{Elems: elems}, true
		}

	case ast.ListReverse:
		if len(args) < 2 {
			return nil, false
		}
		switch l := WHNF(args[1]).(type) {
		case *ast.EmptyList:
			return l, true
		case *ast.NEList:
			elems := make([]ast.Expr, len(l.Elems))
			for i, e := range l.Elems {
				elems[len(l.Elems)-1-i] = e
			}
			return &ast.NEList{Elems: elems}, true
		}

	case ast.OptionalBuild:
		if len(args) < 2 {
			return nil, false
		}
		a, g := args[0], args[1]
		optA := &ast.App{Fn: ast.NewBuiltin(ast.OptionalType), Arg: a}
		some := &ast.Lam{Label: "x", Type: a, Body: &ast.Some{Value: ast.NewVar("x", 0)}}
		none := &ast.App{Fn: ast.NewBuiltin(ast.OptionalNone), Arg: a}
		return rebuildApp(g, []ast.Expr{optA, some, none}), true

	case ast.OptionalFold:
		if len(args) < 5 {
			return nil, false
		}
		some, none := args[3], args[4]
		switch opt := WHNF(args[1]).(type) {
		case *ast.Some:
			return &ast.App{Fn: some, Arg: opt.Value}, true
		default:
			if b, ok := flattenHeadBuiltin(opt); ok && b == ast.OptionalNone {
				return none, true
			}
		}
	}
	return nil, false
}

func flattenHeadBuiltin(e ast.Expr) (ast.BuiltinID, bool) {
	head, _ := flattenApp(e)
	b, ok := head.(*ast.Builtin)
	if !ok {
		return 0, false
	}
	return b.ID, true
}

// normalizeText fully resolves a text literal's interpolations, splicing
// in any that themselves reduce to literal text, so that Text/show and ++
// can tell whether the result is a closed literal.
func normalizeText(e ast.Expr) ast.Expr {
	t, ok := e.(*ast.TextLit)
	if !ok {
		return e
	}
	var chunks []ast.TextChunk
	pending := ""
	for _, c := range t.Chunks {
		pending += c.Prefix
		sub := normalizeText(WHNF(c.Expr))
		if subLit, ok := sub.(*ast.TextLit); ok {
			for _, sc := range subLit.Chunks {
				chunks = append(chunks, ast.TextChunk{Prefix: pending + sc.Prefix, Expr: sc.Expr})
				pending = ""
			}
			pending += subLit.Suffix
			continue
		}
		chunks = append(chunks, ast.TextChunk{Prefix: pending, Expr: sub})
		pending = ""
	}
	pending += t.Suffix
	return &ast.TextLit{Chunks: chunks, Suffix: pending}
}

func quoteText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func showDouble(bits uint64) string {
	v := math.Float64frombits(bits)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
