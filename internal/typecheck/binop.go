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

package typecheck

import (
	"github.com/dhall-lang/dhall-go/ast"
	"github.com/dhall-lang/dhall-go/internal/debug"
	"github.com/dhall-lang/dhall-go/internal/equal"
	"github.com/dhall-lang/dhall-go/internal/tyctx"
	"github.com/dhall-lang/dhall-go/internal/value"
	"github.com/dhall-lang/dhall-go/internal/whnf"
)

func typeBinary(ctx *tyctx.Context, x *ast.BinaryExpr) (*value.TypedValue, error) {
	switch x.Op {
	case ast.OrOp, ast.AndOp, ast.EqOp, ast.NotEqOp:
		if err := requireBuiltin(ctx, x, ast.BoolType, x.L, LeftSide); err != nil {
			return nil, err
		}
		if err := requireBuiltin(ctx, x, ast.BoolType, x.R, RightSide); err != nil {
			return nil, err
		}
		return typed(x, ast.NewBuiltin(ast.BoolType)), nil

	case ast.PlusOp, ast.TimesOp:
		if err := requireBuiltin(ctx, x, ast.NaturalType, x.L, LeftSide); err != nil {
			return nil, err
		}
		if err := requireBuiltin(ctx, x, ast.NaturalType, x.R, RightSide); err != nil {
			return nil, err
		}
		return typed(x, ast.NewBuiltin(ast.NaturalType)), nil

	case ast.TextAppendOp:
		if err := requireBuiltin(ctx, x, ast.TextType, x.L, LeftSide); err != nil {
			return nil, err
		}
		if err := requireBuiltin(ctx, x, ast.TextType, x.R, RightSide); err != nil {
			return nil, err
		}
		return typed(x, ast.NewBuiltin(ast.TextType)), nil

	case ast.ListAppendOp:
		lTV, err := TypeWith(ctx, x.L)
		if err != nil {
			return nil, err
		}
		if _, ok := asListType(lTV.Type.Value); !ok {
			return nil, newErr(ctx, BinOpTypeMismatch, x, "%s operand of # must be a List, got %s", LeftSide, debug.Format(lTV.Type.Value))
		}
		rTV, err := TypeWith(ctx, x.R)
		if err != nil {
			return nil, err
		}
		if _, ok := asListType(rTV.Type.Value); !ok {
			return nil, newErr(ctx, BinOpTypeMismatch, x, "%s operand of # must be a List, got %s", RightSide, debug.Format(rTV.Type.Value))
		}
		if !equal.Equal(lTV.Type.Value, rTV.Type.Value) {
			return nil, newErr(ctx, TypeMismatch, x, "# operands have different list types: %s vs %s",
				debug.Format(lTV.Type.Value), debug.Format(rTV.Type.Value))
		}
		return typed(x, lTV.Type.Value), nil

	case ast.RecordMergeOp:
		lt, lk, err := requireRecordType(ctx, x, x.L, LeftSide)
		if err != nil {
			return nil, err
		}
		rt, rk, err := requireRecordType(ctx, x, x.R, RightSide)
		if err != nil {
			return nil, err
		}
		if lk != rk {
			return nil, newErr(ctx, RecordMismatch, x, "⫽ operands have different kinds: %s vs %s", lk, rk)
		}
		fields := make(map[ast.Label]ast.Expr, len(lt.Fields)+len(rt.Fields))
		for l, t := range lt.Fields {
			fields[l] = t
		}
		for l, t := range rt.Fields {
			fields[l] = t
		}
		return typed(x, &ast.RecordType{Fields: fields}), nil

	case ast.RecordMergeAllOp:
		lt, lk, err := requireRecordType(ctx, x, x.L, LeftSide)
		if err != nil {
			return nil, err
		}
		rt, rk, err := requireRecordType(ctx, x, x.R, RightSide)
		if err != nil {
			return nil, err
		}
		if lk != rk {
			return nil, newErr(ctx, RecordMismatch, x, "∧ operands have different kinds: %s vs %s", lk, rk)
		}
		fields, err := mergeFieldsRecursive(ctx, x, lt.Fields, rt.Fields)
		if err != nil {
			return nil, err
		}
		return typed(x, &ast.RecordType{Fields: fields}), nil

	case ast.RecordTypeMergeOp:
		lTV, err := TypeWith(ctx, x.L)
		if err != nil {
			return nil, err
		}
		lt, ok := whnf.WHNF(x.L).(*ast.RecordType)
		if !ok {
			return nil, newErr(ctx, RecordTypeMergeRequiresRecordType, x, "%s operand of ⩓ is not a record type", LeftSide)
		}
		lc, ok := asConst(lTV.Type.Value)
		if !ok {
			return nil, newErr(ctx, RecordTypeMergeRequiresRecordType, x, "%s operand of ⩓ is not a type", LeftSide)
		}
		rTV, err := TypeWith(ctx, x.R)
		if err != nil {
			return nil, err
		}
		rt, ok := whnf.WHNF(x.R).(*ast.RecordType)
		if !ok {
			return nil, newErr(ctx, RecordTypeMergeRequiresRecordType, x, "%s operand of ⩓ is not a record type", RightSide)
		}
		rc, ok := asConst(rTV.Type.Value)
		if !ok {
			return nil, newErr(ctx, RecordTypeMergeRequiresRecordType, x, "%s operand of ⩓ is not a type", RightSide)
		}
		fields, err := mergeFieldsRecursive(ctx, x, lt.Fields, rt.Fields)
		if err != nil {
			return nil, err
		}
		if lc != rc {
			return nil, newErr(ctx, RecordTypeMismatch, x, "⩓ operands have different kinds: %s vs %s", lc, rc)
		}
		return typed(x, ast.NewConst(lc)), nil

	case ast.EquivalentOp:
		lTy, lOK, err := checkIsTerm(ctx, x.L)
		if err != nil {
			return nil, err
		}
		if !lOK {
			return nil, newErr(ctx, EquivalenceArgumentMustBeTerm, x, "%s operand of ≡ must be a term", LeftSide)
		}
		rTy, rOK, err := checkIsTerm(ctx, x.R)
		if err != nil {
			return nil, err
		}
		if !rOK {
			return nil, newErr(ctx, EquivalenceArgumentMustBeTerm, x, "%s operand of ≡ must be a term", RightSide)
		}
		if !equal.Equal(lTy, rTy) {
			return nil, newErr(ctx, EquivalenceTypeMismatch, x, "≡ operands have different types: %s vs %s",
				debug.Format(lTy), debug.Format(rTy))
		}
		return typed(x, ast.NewConst(ast.Type)), nil
	}
	panic("typecheck: ImportAlt is not legal past import resolution")
}

func requireBuiltin(ctx *tyctx.Context, node ast.Expr, id ast.BuiltinID, operand ast.Expr, side Side) error {
	tv, err := TypeWith(ctx, operand)
	if err != nil {
		return err
	}
	b, ok := whnf.WHNF(tv.Type.Value).(*ast.Builtin)
	if !ok || b.ID != id {
		return newErr(ctx, BinOpTypeMismatch, node, "%s operand must have type %s, got %s", side, id, debug.Format(tv.Type.Value))
	}
	return nil
}

// requireRecordType checks that operand is a record value and returns both
// its field-type record and that record type's own universe (Type vs
// Kind), so callers can additionally enforce that two operands being
// combined live in the same universe.
func requireRecordType(ctx *tyctx.Context, node ast.Expr, operand ast.Expr, side Side) (*ast.RecordType, ast.Universe, error) {
	tv, err := TypeWith(ctx, operand)
	if err != nil {
		return nil, 0, err
	}
	rt, ok := whnf.WHNF(tv.Type.Value).(*ast.RecordType)
	if !ok {
		return nil, 0, newErr(ctx, MustCombineRecord, node, "%s operand must be a record", side)
	}
	rtv, err := TypeWith(ctx, rt)
	if err != nil {
		return nil, 0, err
	}
	u, ok := asConst(rtv.Type.Value)
	if !ok {
		return nil, 0, newErr(ctx, MustCombineRecord, node, "%s operand's record type is not itself a type, kind, or sort", side)
	}
	return rt, u, nil
}

// mergeFieldsRecursive combines two record-type field maps, recursing into
// a colliding field only when both sides' value at that field are
// themselves record types; any other collision is unresolvable.
func mergeFieldsRecursive(ctx *tyctx.Context, node ast.Expr, l, r map[ast.Label]ast.Expr) (map[ast.Label]ast.Expr, error) {
	out := make(map[ast.Label]ast.Expr, len(l)+len(r))
	for k, v := range l {
		out[k] = v
	}
	for k, rv := range r {
		lv, ok := out[k]
		if !ok {
			out[k] = rv
			continue
		}
		lrt, lok := whnf.WHNF(lv).(*ast.RecordType)
		rrt, rok := whnf.WHNF(rv).(*ast.RecordType)
		if !lok || !rok {
			return nil, newErr(ctx, FieldCollision, node, "field %q is defined on both sides and is not a record on both", k)
		}
		merged, err := mergeFieldsRecursive(ctx, node, lrt.Fields, rrt.Fields)
		if err != nil {
			return nil, err
		}
		out[k] = &ast.RecordType{Fields: merged}
	}
	return out, nil
}
