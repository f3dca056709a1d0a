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

// Package typecheck implements the bidirectional type-checker: a single
// recursive pass, TypeWith, that infers the type of every node of the
// expression tree, consulting internal/whnf to reduce scrutinees and
// internal/equal to compare types up to normalization and alpha-renaming.
package typecheck

import (
	"github.com/dhall-lang/dhall-go/ast"
	"github.com/dhall-lang/dhall-go/internal/debug"
	"github.com/dhall-lang/dhall-go/internal/equal"
	"github.com/dhall-lang/dhall-go/internal/tyctx"
	"github.com/dhall-lang/dhall-go/internal/value"
	"github.com/dhall-lang/dhall-go/internal/whnf"
)

func typed(v, t ast.Expr) *value.TypedValue {
	return value.New(v, value.New(t, nil))
}

// functionCheck implements the rule a Pi type's own universe is checked
// against: the function space is a term (Type) whenever its codomain is,
// and otherwise the higher of the domain's and codomain's universes.
func functionCheck(a, b ast.Universe) ast.Universe {
	if b == ast.Type {
		return ast.Type
	}
	if a > b {
		return a
	}
	return b
}

func asConst(e ast.Expr) (ast.Universe, bool) {
	c, ok := whnf.WHNF(e).(*ast.Const)
	if !ok {
		return 0, false
	}
	return c.Val, true
}

// recordTypeUniverse typechecks each field type in fields and requires all
// of them to inhabit the same universe, returning that shared universe.
// RecordType and RecordLit both route through this: a record's own type
// (Type, Kind, or Sort) is only well formed when its fields don't mix
// universes.
func recordTypeUniverse(ctx *tyctx.Context, node ast.Expr, fields map[ast.Label]ast.Expr) (ast.Universe, error) {
	u := ast.Type
	seen := false
	for l, t := range fields {
		tv, err := TypeWith(ctx, t)
		if err != nil {
			return 0, err
		}
		c, ok := asConst(tv.Type.Value)
		if !ok {
			return 0, newErr(ctx, InvalidFieldType, node, "field type %s is not a type, kind, or sort", debug.Format(t))
		}
		if !seen {
			u = c
			seen = true
			continue
		}
		if c != u {
			return 0, newErr(ctx, InvalidFieldType, node, "field %q has universe %s, but other fields have %s; a record type cannot mix universes", l, c, u)
		}
	}
	return u, nil
}

func asListType(e ast.Expr) (ast.Expr, bool) {
	app, ok := whnf.WHNF(e).(*ast.App)
	if !ok {
		return nil, false
	}
	b, ok := app.Fn.(*ast.Builtin)
	if !ok || b.ID != ast.ListType {
		return nil, false
	}
	return app.Arg, true
}

// checkIsTerm infers e's type and reports whether e is a "term": something
// whose own type is classified Type, as opposed to a type, kind or sort.
func checkIsTerm(ctx *tyctx.Context, e ast.Expr) (ast.Expr, bool, error) {
	tv, err := TypeWith(ctx, e)
	if err != nil {
		return nil, false, err
	}
	if _, isConst := asConst(tv.Type.Value); isConst {
		return tv.Type.Value, false, nil
	}
	kindTV, err := TypeWith(ctx, tv.Type.Value)
	if err != nil {
		return nil, false, err
	}
	c, ok := asConst(kindTV.Type.Value)
	return tv.Type.Value, ok && c == ast.Type, nil
}

// TypeWith infers the type of e under ctx, returning the checked value
// together with its type.
func TypeWith(ctx *tyctx.Context, e ast.Expr) (*value.TypedValue, error) {
	switch x := e.(type) {
	case *ast.Const:
		switch x.Val {
		case ast.Type:
			return typed(x, ast.NewConst(ast.Kind)), nil
		case ast.Kind:
			return typed(x, ast.NewConst(ast.Sort)), nil
		default:
			return nil, newErr(ctx, SortHasNoType, x, "Sort has no type")
		}

	case *ast.Var:
		ty, ok := ctx.Lookup(x.Name, x.Index)
		if !ok {
			return nil, newErr(ctx, UnboundVariable, x, "unbound variable %s", debug.Format(x))
		}
		return typed(x, ty), nil

	case *ast.Builtin:
		return typed(x, builtinType(x.ID)), nil

	case *ast.Pi:
		domTV, err := TypeWith(ctx, x.Domain)
		if err != nil {
			return nil, err
		}
		a, ok := asConst(domTV.Type.Value)
		if !ok {
			return nil, newErr(ctx, InvalidInputType, x, "input type %s is not a type, kind, or sort", debug.Format(x.Domain))
		}
		inner := ctx.Insert(x.Label, x.Domain)
		codTV, err := TypeWith(inner, x.Codomain)
		if err != nil {
			return nil, err
		}
		b, ok := asConst(codTV.Type.Value)
		if !ok {
			return nil, newErr(ctx, InvalidOutputType, x, "output type %s is not a type, kind, or sort", debug.Format(x.Codomain))
		}
		return typed(x, ast.NewConst(functionCheck(a, b))), nil

	case *ast.Lam:
		domTV, err := TypeWith(ctx, x.Type)
		if err != nil {
			return nil, err
		}
		if _, ok := asConst(domTV.Type.Value); !ok {
			return nil, newErr(ctx, InvalidInputType, x, "input type %s is not a type, kind, or sort", debug.Format(x.Type))
		}
		inner := ctx.Insert(x.Label, x.Type)
		bodyTV, err := TypeWith(inner, x.Body)
		if err != nil {
			return nil, err
		}
		piType := &ast.Pi{Label: x.Label, Domain: x.Type, Codomain: bodyTV.Type.Value}
		if _, err := TypeWith(ctx, piType); err != nil {
			return nil, err
		}
		return typed(x, piType), nil

	case *ast.App:
		fnTV, err := TypeWith(ctx, x.Fn)
		if err != nil {
			return nil, err
		}
		pi, ok := whnf.WHNF(fnTV.Type.Value).(*ast.Pi)
		if !ok {
			return nil, newErr(ctx, NotAFunction, x, "%s is not a function", debug.Format(x.Fn))
		}
		argTV, err := TypeWith(ctx, x.Arg)
		if err != nil {
			return nil, err
		}
		if !equal.Equal(argTV.Type.Value, pi.Domain) {
			return nil, newErr(ctx, TypeMismatch, x, "function expects argument of type %s but got %s",
				debug.Format(pi.Domain), debug.Format(argTV.Type.Value))
		}
		return typed(x, whnf.SubstTop(pi.Label, x.Arg, pi.Codomain)), nil

	case *ast.Annot:
		vTV, err := TypeWith(ctx, x.Value)
		if err != nil {
			return nil, err
		}
		if _, err := TypeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		if !equal.Equal(vTV.Type.Value, x.Type) {
			return nil, newErr(ctx, AnnotMismatch, x, "annotated type %s does not match inferred type %s",
				debug.Format(x.Type), debug.Format(vTV.Type.Value))
		}
		return typed(x.Value, x.Type), nil

	case *ast.Let:
		vTV, err := TypeWith(ctx, x.Value)
		if err != nil {
			return nil, err
		}
		annotTy := vTV.Type.Value
		if x.Type != nil {
			if _, err := TypeWith(ctx, x.Type); err != nil {
				return nil, err
			}
			if !equal.Equal(annotTy, x.Type) {
				return nil, newErr(ctx, AnnotMismatch, x, "let binding's annotated type %s does not match inferred type %s",
					debug.Format(x.Type), debug.Format(annotTy))
			}
		}
		return TypeWith(ctx, whnf.SubstTop(x.Label, x.Value, x.Body))

	case *ast.BoolIf:
		condTV, err := TypeWith(ctx, x.Cond)
		if err != nil {
			return nil, err
		}
		if b, ok := whnf.WHNF(condTV.Type.Value).(*ast.Builtin); !ok || b.ID != ast.BoolType {
			return nil, newErr(ctx, InvalidPredicate, x, "if predicate must have type Bool, got %s", debug.Format(condTV.Type.Value))
		}
		thenTy, thenOK, err := checkIsTerm(ctx, x.Then)
		if err != nil {
			return nil, err
		}
		if !thenOK {
			return nil, newErr(ctx, IfBranchMustBeTerm, x, "%s branch of if must be a term", LeftSide)
		}
		elseTy, elseOK, err := checkIsTerm(ctx, x.Else)
		if err != nil {
			return nil, err
		}
		if !elseOK {
			return nil, newErr(ctx, IfBranchMustBeTerm, x, "%s branch of if must be a term", RightSide)
		}
		if !equal.Equal(thenTy, elseTy) {
			return nil, newErr(ctx, IfBranchMismatch, x, "branches of if have different types: %s vs %s",
				debug.Format(thenTy), debug.Format(elseTy))
		}
		return typed(x, thenTy), nil

	case *ast.EmptyList:
		elemTy, ok := asListType(x.Type)
		if !ok {
			return nil, newErr(ctx, InvalidListType, x, "%s is not a List type", debug.Format(x.Type))
		}
		if tv, err := TypeWith(ctx, elemTy); err != nil {
			return nil, err
		} else if c, ok := asConst(tv.Type.Value); !ok || c != ast.Type {
			return nil, newErr(ctx, InvalidListType, x, "list element type %s is not a term", debug.Format(elemTy))
		}
		return typed(x, x.Type), nil

	case *ast.NEList:
		elemTy, ok, err := checkIsTerm(ctx, x.Elems[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newErr(ctx, InvalidListType, x, "list element type %s is not a term", debug.Format(elemTy))
		}
		for i := 1; i < len(x.Elems); i++ {
			eTV, err := TypeWith(ctx, x.Elems[i])
			if err != nil {
				return nil, err
			}
			if !equal.Equal(eTV.Type.Value, elemTy) {
				return nil, newErr(ctx, InvalidListElement, x, "list element %d has type %s, expected %s",
					i, debug.Format(eTV.Type.Value), debug.Format(elemTy))
			}
		}
		return typed(x, listOf(elemTy)), nil

	case *ast.Some:
		valTy, ok, err := checkIsTerm(ctx, x.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newErr(ctx, InvalidOptionalType, x, "Some's argument type %s is not a term", debug.Format(valTy))
		}
		return typed(x, optionalOf(valTy)), nil

	case *ast.RecordType:
		u, err := recordTypeUniverse(ctx, x, x.Fields)
		if err != nil {
			return nil, err
		}
		return typed(x, ast.NewConst(u)), nil

	case *ast.RecordLit:
		fields := make(map[ast.Label]ast.Expr, len(x.Fields))
		for l, v := range x.Fields {
			tv, err := TypeWith(ctx, v)
			if err != nil {
				return nil, err
			}
			fields[l] = tv.Type.Value
		}
		rt := &ast.RecordType{Fields: fields}
		if _, err := recordTypeUniverse(ctx, x, fields); err != nil {
			return nil, err
		}
		return typed(x, rt), nil

	case *ast.UnionType:
		u := ast.Type
		seen := false
		for l, t := range x.Alternatives {
			if t == nil {
				continue
			}
			tv, err := TypeWith(ctx, t)
			if err != nil {
				return nil, err
			}
			c, ok := asConst(tv.Type.Value)
			if !ok {
				return nil, newErr(ctx, InvalidFieldType, x, "alternative type %s is not a type, kind, or sort", debug.Format(t))
			}
			if !seen {
				u = c
				seen = true
				continue
			}
			if c != u {
				return nil, newErr(ctx, InvalidFieldType, x, "alternative %q has universe %s, but other alternatives have %s; a union type cannot mix universes", l, c, u)
			}
		}
		return typed(x, ast.NewConst(u)), nil

	case *ast.UnionLit:
		var valTy ast.Expr
		if x.Value != nil {
			vTV, err := TypeWith(ctx, x.Value)
			if err != nil {
				return nil, err
			}
			valTy = vTV.Type.Value
		}
		alts := make(map[ast.Label]ast.Expr, len(x.Alternatives)+1)
		alts[x.Label] = valTy
		for l, t := range x.Alternatives {
			alts[l] = t
		}
		ut := &ast.UnionType{Alternatives: alts}
		if _, err := TypeWith(ctx, ut); err != nil {
			return nil, err
		}
		return typed(x, ut), nil

	case *ast.Field:
		rTV, err := TypeWith(ctx, x.Record)
		if err != nil {
			return nil, err
		}
		if t, ok := whnf.WHNF(rTV.Type.Value).(*ast.RecordType); ok {
			fty, ok := t.Fields[x.Label]
			if !ok {
				return nil, newErr(ctx, MissingRecordField, x, "record has no field %q", x.Label)
			}
			return typed(x, fty), nil
		}
		// The record's type isn't itself a record type: fall through to
		// the union-constructor case (selecting a label directly on a
		// union type), per the implemented behavior rather than requiring
		// the record's type to be checked as a universe first.
		if ut, ok := whnf.WHNF(x.Record).(*ast.UnionType); ok {
			if _, ok := ut.Alternatives[x.Label]; !ok {
				return nil, newErr(ctx, MissingUnionField, x, "union type has no alternative %q", x.Label)
			}
			return TypeWith(ctx, whnf.WHNF(x))
		}
		return nil, newErr(ctx, NotARecord, x, "%s is not a record or union type", debug.Format(x.Record))

	case *ast.Projection:
		rTV, err := TypeWith(ctx, x.Record)
		if err != nil {
			return nil, err
		}
		rt, ok := whnf.WHNF(rTV.Type.Value).(*ast.RecordType)
		if !ok {
			return nil, newErr(ctx, ProjectionMustBeRecord, x, "%s is not a record", debug.Format(x.Record))
		}
		fields := make(map[ast.Label]ast.Expr, len(x.Labels))
		for _, l := range x.Labels {
			ty, ok := rt.Fields[l]
			if !ok {
				return nil, newErr(ctx, ProjectionMissingEntry, x, "record has no field %q", l)
			}
			fields[l] = ty
		}
		return typed(x, &ast.RecordType{Fields: fields}), nil

	case *ast.ProjectionByType:
		rTV, err := TypeWith(ctx, x.Record)
		if err != nil {
			return nil, err
		}
		rt, ok := whnf.WHNF(rTV.Type.Value).(*ast.RecordType)
		if !ok {
			return nil, newErr(ctx, ProjectionMustBeRecord, x, "%s is not a record", debug.Format(x.Record))
		}
		if _, err := TypeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		selTy, ok := whnf.WHNF(x.Type).(*ast.RecordType)
		if !ok {
			return nil, newErr(ctx, ProjectionMustBeRecord, x, "%s is not a record type", debug.Format(x.Type))
		}
		fields := make(map[ast.Label]ast.Expr, len(selTy.Fields))
		for l, declared := range selTy.Fields {
			actual, ok := rt.Fields[l]
			if !ok {
				return nil, newErr(ctx, ProjectionMissingEntry, x, "record has no field %q", l)
			}
			if !equal.Equal(actual, declared) {
				return nil, newErr(ctx, RecordTypeMismatch, x, "field %q has type %s, selector expects %s",
					l, debug.Format(actual), debug.Format(declared))
			}
			fields[l] = actual
		}
		return typed(x, &ast.RecordType{Fields: fields}), nil

	case *ast.Merge:
		return typeMerge(ctx, x)

	case *ast.ToMap:
		return typeToMap(ctx, x)

	case *ast.Assert:
		ae, ok := x.Annotation.(*ast.BinaryExpr)
		if !ok || ae.Op != ast.EquivalentOp {
			return nil, newErr(ctx, AssertMustTakeEquivalence, x, "assert's annotation must be an equivalence")
		}
		if _, err := TypeWith(ctx, x.Annotation); err != nil {
			return nil, err
		}
		if !equal.Equal(ae.L, ae.R) {
			return nil, newErr(ctx, AssertMismatch, x, "assert failed: %s is not equivalent to %s",
				debug.Format(ae.L), debug.Format(ae.R))
		}
		return typed(x, x.Annotation), nil

	case *ast.BoolLit:
		return typed(x, ast.NewBuiltin(ast.BoolType)), nil

	case *ast.NaturalLit:
		return typed(x, ast.NewBuiltin(ast.NaturalType)), nil

	case *ast.IntegerLit:
		return typed(x, ast.NewBuiltin(ast.IntegerType)), nil

	case *ast.DoubleLit:
		return typed(x, ast.NewBuiltin(ast.DoubleType)), nil

	case *ast.TextLit:
		for _, c := range x.Chunks {
			tv, err := TypeWith(ctx, c.Expr)
			if err != nil {
				return nil, err
			}
			if b, ok := whnf.WHNF(tv.Type.Value).(*ast.Builtin); !ok || b.ID != ast.TextType {
				return nil, newErr(ctx, BinOpTypeMismatch, x, "interpolated expression %s must have type Text", debug.Format(c.Expr))
			}
		}
		return typed(x, ast.NewBuiltin(ast.TextType)), nil

	case *ast.BinaryExpr:
		return typeBinary(ctx, x)

	case *ast.Import:
		panic("typecheck: unresolved import in a fully resolved tree")
	}
	panic("typecheck: unhandled expression")
}

// TypeCheck infers and returns e's type, or reports why e is ill-typed. A
// bare Sort literal is rejected here, same as anywhere else Sort's type is
// demanded, since Sort has no type of its own.
func TypeCheck(e ast.Expr) (*value.TypedValue, error) {
	return TypeWith(nil, e)
}

// TypeCheckAgainst checks that e has type ty.
func TypeCheckAgainst(e, ty ast.Expr) (*value.TypedValue, error) {
	return TypeWith(nil, &ast.Annot{Value: e, Type: ty})
}
