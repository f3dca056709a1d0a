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

// Package equal implements judgmental (definitional) equality between two
// expressions: normalize both with internal/whnf, recursing under every
// binder and constructor, and compare up to alpha-renaming of bound
// variables. The type-checker calls this wherever the rules require two
// types to "be equal" rather than merely syntactically identical.
package equal

import (
	"math/big"

	"github.com/dhall-lang/dhall-go/ast"
	"github.com/dhall-lang/dhall-go/internal/whnf"
)

// Equal reports whether a and b are definitionally equal: equal after
// full normalization, treating alpha-equivalent bound variables as the
// same.
func Equal(a, b ast.Expr) bool {
	return equal(a, b, nil, nil)
}

// scope pairs the two sides' stacks of bound names, pushed in lockstep as
// the comparison descends under binders. A variable's "frame" is its
// position counting from the innermost entry; two bound variables are
// equal iff they resolve to the same frame, regardless of what name each
// side happened to use for it.
type scope []string

func (s scope) push(name string) scope {
	return append(scope{name}, s...)
}

// frame returns the 0-based position (innermost first) of the (index+1)th
// occurrence of name in s counting duplicates, and whether it was found at
// all (false means the variable is free with respect to s).
func (s scope) frame(name string, index int) (int, bool) {
	count := 0
	for i, n := range s {
		if n == name {
			if count == index {
				return i, true
			}
			count++
		}
	}
	return 0, false
}

func equal(a, b ast.Expr, sa, sb scope) bool {
	a = whnf.WHNF(a)
	b = whnf.WHNF(b)

	switch x := a.(type) {
	case *ast.Var:
		y, ok := b.(*ast.Var)
		if !ok {
			return false
		}
		fa, boundA := sa.frame(x.Name, x.Index)
		fb, boundB := sb.frame(y.Name, y.Index)
		if boundA != boundB {
			return false
		}
		if boundA {
			return fa == fb
		}
		// Free with respect to the local scope: must name the exact same
		// outer binding, with the index reduced by however many same-name
		// frames the local scope already accounted for.
		ra := x.Index - countName(sa, x.Name)
		rb := y.Index - countName(sb, y.Name)
		return x.Name == y.Name && ra == rb

	case *ast.Const:
		y, ok := b.(*ast.Const)
		return ok && x.Val == y.Val

	case *ast.Lam:
		y, ok := b.(*ast.Lam)
		if !ok {
			return false
		}
		return equal(x.Type, y.Type, sa, sb) &&
			equal(x.Body, y.Body, sa.push(x.Label), sb.push(y.Label))

	case *ast.Pi:
		y, ok := b.(*ast.Pi)
		if !ok {
			return false
		}
		return equal(x.Domain, y.Domain, sa, sb) &&
			equal(x.Codomain, y.Codomain, sa.push(x.Label), sb.push(y.Label))

	case *ast.App:
		y, ok := b.(*ast.App)
		return ok && equal(x.Fn, y.Fn, sa, sb) && equal(x.Arg, y.Arg, sa, sb)

	case *ast.BoolLit:
		y, ok := b.(*ast.BoolLit)
		return ok && x.Val == y.Val

	case *ast.NaturalLit:
		y, ok := b.(*ast.NaturalLit)
		return ok && decEqual(x.Val.Coeff, x.Val.Negative, y.Val.Coeff, y.Val.Negative)

	case *ast.IntegerLit:
		y, ok := b.(*ast.IntegerLit)
		return ok && decEqual(x.Val.Coeff, x.Val.Negative, y.Val.Coeff, y.Val.Negative)

	case *ast.DoubleLit:
		y, ok := b.(*ast.DoubleLit)
		return ok && x.Bits == y.Bits

	case *ast.TextLit:
		y, ok := b.(*ast.TextLit)
		if !ok || len(x.Chunks) != len(y.Chunks) || x.Suffix != y.Suffix {
			return false
		}
		for i := range x.Chunks {
			if x.Chunks[i].Prefix != y.Chunks[i].Prefix {
				return false
			}
			if !equal(x.Chunks[i].Expr, y.Chunks[i].Expr, sa, sb) {
				return false
			}
		}
		return true

	case *ast.EmptyList:
		y, ok := b.(*ast.EmptyList)
		return ok && equal(x.Type, y.Type, sa, sb)

	case *ast.NEList:
		y, ok := b.(*ast.NEList)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !equal(x.Elems[i], y.Elems[i], sa, sb) {
				return false
			}
		}
		return true

	case *ast.Some:
		y, ok := b.(*ast.Some)
		return ok && equal(x.Value, y.Value, sa, sb)

	case *ast.RecordType:
		y, ok := b.(*ast.RecordType)
		return ok && equalFieldMap(x.Fields, y.Fields, sa, sb)

	case *ast.RecordLit:
		y, ok := b.(*ast.RecordLit)
		return ok && equalFieldMap(x.Fields, y.Fields, sa, sb)

	case *ast.UnionType:
		y, ok := b.(*ast.UnionType)
		return ok && equalOptFieldMap(x.Alternatives, y.Alternatives, sa, sb)

	case *ast.UnionLit:
		y, ok := b.(*ast.UnionLit)
		if !ok || x.Label != y.Label {
			return false
		}
		if (x.Value == nil) != (y.Value == nil) {
			return false
		}
		if x.Value != nil && !equal(x.Value, y.Value, sa, sb) {
			return false
		}
		return equalOptFieldMap(x.Alternatives, y.Alternatives, sa, sb)

	case *ast.Field:
		y, ok := b.(*ast.Field)
		return ok && x.Label == y.Label && equal(x.Record, y.Record, sa, sb)

	case *ast.Projection:
		y, ok := b.(*ast.Projection)
		if !ok || len(x.Labels) != len(y.Labels) {
			return false
		}
		for i := range x.Labels {
			if x.Labels[i] != y.Labels[i] {
				return false
			}
		}
		return equal(x.Record, y.Record, sa, sb)

	case *ast.ProjectionByType:
		y, ok := b.(*ast.ProjectionByType)
		return ok && equal(x.Record, y.Record, sa, sb) && equal(x.Type, y.Type, sa, sb)

	case *ast.BoolIf:
		y, ok := b.(*ast.BoolIf)
		return ok && equal(x.Cond, y.Cond, sa, sb) &&
			equal(x.Then, y.Then, sa, sb) && equal(x.Else, y.Else, sa, sb)

	case *ast.Merge:
		y, ok := b.(*ast.Merge)
		if !ok {
			return false
		}
		if !equal(x.Handlers, y.Handlers, sa, sb) || !equal(x.Union, y.Union, sa, sb) {
			return false
		}
		return equalOptional(x.Type, y.Type, sa, sb)

	case *ast.ToMap:
		y, ok := b.(*ast.ToMap)
		return ok && equal(x.Record, y.Record, sa, sb) && equalOptional(x.Type, y.Type, sa, sb)

	case *ast.Assert:
		y, ok := b.(*ast.Assert)
		return ok && equal(x.Annotation, y.Annotation, sa, sb)

	case *ast.Builtin:
		y, ok := b.(*ast.Builtin)
		return ok && x.ID == y.ID

	case *ast.BinaryExpr:
		y, ok := b.(*ast.BinaryExpr)
		return ok && x.Op == y.Op && equal(x.L, y.L, sa, sb) && equal(x.R, y.R, sa, sb)
	}
	return false
}

func equalOptional(a, b ast.Expr, sa, sb scope) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return equal(a, b, sa, sb)
}

func equalFieldMap(a, b map[ast.Label]ast.Expr, sa, sb scope) bool {
	if len(a) != len(b) {
		return false
	}
	for l, av := range a {
		bv, ok := b[l]
		if !ok || !equal(av, bv, sa, sb) {
			return false
		}
	}
	return true
}

func equalOptFieldMap(a, b map[ast.Label]ast.Expr, sa, sb scope) bool {
	if len(a) != len(b) {
		return false
	}
	for l, av := range a {
		bv, ok := b[l]
		if !ok {
			return false
		}
		if !equalOptional(av, bv, sa, sb) {
			return false
		}
	}
	return true
}

func countName(s scope, name string) int {
	n := 0
	for _, x := range s {
		if x == name {
			n++
		}
	}
	return n
}

func decEqual(ca big.Int, na bool, cb big.Int, nb bool) bool {
	if ca.Sign() == 0 && cb.Sign() == 0 {
		return true
	}
	return na == nb && ca.Cmp(&cb) == 0
}
