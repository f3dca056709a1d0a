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

// Package whnf reduces an already type-checked expression to weak head
// normal form: enough to expose its outermost constructor, without
// necessarily reducing its subexpressions. The type-checker calls this to
// compare types (by further reducing both sides to compare structurally)
// and to evaluate the scrutinees of field selection, projection, if, merge
// and toMap.
//
// WHNF assumes its input is well-typed. Dhall's type system is strongly
// normalizing, so a well-typed term's reduction always terminates; this
// package makes no attempt to detect or recover from divergence on
// ill-typed input, since that can only happen if a caller skips checking.
package whnf

import "github.com/dhall-lang/dhall-go/ast"

// WHNF reduces e to weak head normal form.
func WHNF(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.Annot:
		return WHNF(x.Value)

	case *ast.Let:
		return WHNF(substTop(x.Label, x.Value, x.Body))

	case *ast.App:
		return whnfApp(x)

	case *ast.Field:
		return whnfField(x)

	case *ast.Projection:
		return whnfProjection(x)

	case *ast.ProjectionByType:
		return whnfProjectionByType(x)

	case *ast.BoolIf:
		return whnfBoolIf(x)

	case *ast.Merge:
		return whnfMerge(x)

	case *ast.ToMap:
		return whnfToMap(x)

	case *ast.BinaryExpr:
		return whnfBinary(x)

	default:
		// Var, Const, Lam, Pi, literals, Builtin, TextLit, EmptyList,
		// NEList, Some, RecordType, RecordLit, UnionType, UnionLit,
		// Assert: all already present their own head constructor and
		// have no further weak-head reduction rule.
		return x
	}
}

// substTop implements the shared shape of beta reduction and let
// expansion: substitute value for the variable named name at index 0 in
// body. value lives in the scope enclosing the binder being removed, so it
// is not shifted up front; ast.Subst shifts it over each binder it crosses
// inside body and decrements deeper same-named indices in body as it
// replaces the match, so no further shift is applied to the result.
func substTop(name ast.Label, value, body ast.Expr) ast.Expr {
	return ast.Subst(ast.Var{Name: name, Index: 0}, value, body)
}

// SubstTop is the exported form of substTop, used by internal/typecheck to
// compute a Pi codomain's type after an application without repeating the
// shift/substitute dance at the call site.
func SubstTop(name ast.Label, value, body ast.Expr) ast.Expr {
	return substTop(name, value, body)
}

// flattenApp decomposes a left-nested spine of applications into its head
// and its arguments in application order (args[0] was applied first).
func flattenApp(e ast.Expr) (head ast.Expr, args []ast.Expr) {
	for {
		app, ok := e.(*ast.App)
		if !ok {
			return e, args
		}
		args = append([]ast.Expr{app.Arg}, args...)
		e = app.Fn
	}
}

// rebuildApp is the inverse of flattenApp.
func rebuildApp(head ast.Expr, args []ast.Expr) ast.Expr {
	e := head
	for _, a := range args {
		e = &ast.App{Fn: e, Arg: a}
	}
	return e
}

func whnfApp(x *ast.App) ast.Expr {
	fn := WHNF(x.Fn)
	if lam, ok := fn.(*ast.Lam); ok {
		return WHNF(substTop(lam.Label, x.Arg, lam.Body))
	}

	head, args := flattenApp(&ast.App{Fn: fn, Arg: x.Arg})
	if b, ok := head.(*ast.Builtin); ok {
		if n, ok := builtinArity[b.ID]; ok && len(args) >= n {
			if result, ok := reduceBuiltin(b.ID, args[:n]); ok {
				return WHNF(rebuildApp(result, args[n:]))
			}
		}
	}
	return rebuildApp(fn, []ast.Expr{x.Arg})
}

func whnfField(x *ast.Field) ast.Expr {
	r := WHNF(x.Record)
	switch rec := r.(type) {
	case *ast.RecordLit:
		if v, ok := rec.Fields[x.Label]; ok {
			return WHNF(v)
		}
	case *ast.UnionType:
		// Field access on a union *type* is constructor notation: it
		// builds either the injection function for an alternative that
		// carries a payload, or the bare value of a payload-less one.
		if t, ok := rec.Alternatives[x.Label]; ok {
			if t == nil {
				return &ast.UnionLit{Label: x.Label, Value: nil, Alternatives: withoutKey(rec.Alternatives, x.Label)}
			}
			rest := withoutKey(rec.Alternatives, x.Label)
			shifted := make(map[ast.Label]ast.Expr, len(rest))
			bound := ast.Var{Name: "_", Index: 0}
			for l, ty := range rest {
				if ty == nil {
					shifted[l] = nil
					continue
				}
				shifted[l] = ast.Shift(1, bound, ty)
			}
			return &ast.Lam{
				Label: "_",
				Type:  t,
				Body: &ast.UnionLit{
					Label:        x.Label,
					Value:        ast.NewVar("_", 0),
					Alternatives: shifted,
				},
			}
		}
	}
	return &ast.Field{Record: r, Label: x.Label}
}

func withoutKey(m map[ast.Label]ast.Expr, key ast.Label) map[ast.Label]ast.Expr {
	out := make(map[ast.Label]ast.Expr, len(m))
	for k, v := range m {
		if k == key {
			continue
		}
		out[k] = v
	}
	return out
}

func whnfProjection(x *ast.Projection) ast.Expr {
	r := WHNF(x.Record)
	rec, ok := r.(*ast.RecordLit)
	if !ok {
		return &ast.Projection{Record: r, Labels: x.Labels}
	}
	fields := make(map[ast.Label]ast.Expr, len(x.Labels))
	for _, l := range x.Labels {
		fields[l] = rec.Fields[l]
	}
	return &ast.RecordLit{Fields: fields}
}

func whnfProjectionByType(x *ast.ProjectionByType) ast.Expr {
	r := WHNF(x.Record)
	t := WHNF(x.Type)
	rt, ok := t.(*ast.RecordType)
	if !ok {
		return &ast.ProjectionByType{Record: r, Type: t}
	}
	labels := make([]ast.Label, 0, len(rt.Fields))
	for l := range rt.Fields {
		labels = append(labels, l)
	}
	return whnfProjection(&ast.Projection{Record: r, Labels: labels})
}

func whnfBoolIf(x *ast.BoolIf) ast.Expr {
	cond := WHNF(x.Cond)
	if b, ok := cond.(*ast.BoolLit); ok {
		if b.Val {
			return WHNF(x.Then)
		}
		return WHNF(x.Else)
	}
	return &ast.BoolIf{Cond: cond, Then: x.Then, Else: x.Else}
}
