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

func typeMerge(ctx *tyctx.Context, x *ast.Merge) (*value.TypedValue, error) {
	hTV, err := TypeWith(ctx, x.Handlers)
	if err != nil {
		return nil, err
	}
	handlersTy, ok := whnf.WHNF(hTV.Type.Value).(*ast.RecordType)
	if !ok {
		return nil, newErr(ctx, Merge1ArgMustBeRecord, x, "merge's first argument must be a record of handlers")
	}
	uTV, err := TypeWith(ctx, x.Union)
	if err != nil {
		return nil, err
	}
	unionTy, ok := whnf.WHNF(uTV.Type.Value).(*ast.UnionType)
	if !ok {
		return nil, newErr(ctx, Merge2ArgMustBeUnion, x, "merge's second argument must be a union")
	}

	var resultTy ast.Expr
	if x.Type != nil {
		if _, err := TypeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		resultTy = x.Type
	}

	for label, payloadTy := range unionTy.Alternatives {
		handlerTy, ok := handlersTy.Fields[label]
		if !ok {
			return nil, newErr(ctx, MergeVariantMissingHandler, x, "union alternative %q has no handler", label)
		}
		if payloadTy == nil {
			if resultTy == nil {
				resultTy = handlerTy
			} else if !equal.Equal(resultTy, handlerTy) {
				return nil, newErr(ctx, MergeHandlerTypeMismatch, x, "handler for %q has type %s, expected %s",
					label, debug.Format(handlerTy), debug.Format(resultTy))
			}
			continue
		}
		hp, ok := whnf.WHNF(handlerTy).(*ast.Pi)
		if !ok {
			return nil, newErr(ctx, MergeHandlerTypeMismatch, x, "handler for %q must be a function accepting its payload", label)
		}
		if !equal.Equal(hp.Domain, payloadTy) {
			return nil, newErr(ctx, MergeHandlerTypeMismatch, x, "handler for %q expects payload of type %s, union carries %s",
				label, debug.Format(hp.Domain), debug.Format(payloadTy))
		}
		returnTy, independent := nonDependent(hp.Label, hp.Codomain)
		if !independent {
			return nil, newErr(ctx, MergeHandlerReturnTypeMustNotBeDependent, x, "handler for %q's return type must not depend on its argument", label)
		}
		if resultTy == nil {
			resultTy = returnTy
		} else if !equal.Equal(resultTy, returnTy) {
			return nil, newErr(ctx, MergeHandlerTypeMismatch, x, "handler for %q has return type %s, expected %s",
				label, debug.Format(returnTy), debug.Format(resultTy))
		}
	}
	for label := range handlersTy.Fields {
		if _, ok := unionTy.Alternatives[label]; !ok {
			return nil, newErr(ctx, MergeHandlerMissingVariant, x, "handler %q has no matching union alternative", label)
		}
	}
	if resultTy == nil {
		return nil, newErr(ctx, MergeEmptyNeedsAnnotation, x, "merge of an empty union needs a type annotation")
	}
	if x.Type != nil && !equal.Equal(resultTy, x.Type) {
		return nil, newErr(ctx, MergeAnnotMismatch, x, "merge's annotated type %s does not match inferred type %s",
			debug.Format(x.Type), debug.Format(resultTy))
	}
	return typed(x, resultTy), nil
}

// nonDependent reports whether codomain, read under a binder named label,
// is free of occurrences of that binder: it substitutes two distinct closed
// witnesses for the bound variable and checks the results agree. Genuine
// dependence on the argument makes the two substitutions diverge; any
// agreement instead means codomain never looked at the argument, so the
// substituted codomain is reported as the non-dependent return type.
// ast.Subst already lowers the remaining same-named references past the
// removed binder, so the result needs no further shift.
func nonDependent(label ast.Label, codomain ast.Expr) (ast.Expr, bool) {
	bound := ast.Var{Name: label, Index: 0}
	witnessA := ast.NewConst(ast.Type)
	witnessB := ast.NewConst(ast.Kind)
	subA := ast.Subst(bound, witnessA, codomain)
	subB := ast.Subst(bound, witnessB, codomain)
	if !equal.Equal(subA, subB) {
		return nil, false
	}
	return subA, true
}

func typeToMap(ctx *tyctx.Context, x *ast.ToMap) (*value.TypedValue, error) {
	rTV, err := TypeWith(ctx, x.Record)
	if err != nil {
		return nil, err
	}
	rt, ok := whnf.WHNF(rTV.Type.Value).(*ast.RecordType)
	if !ok {
		return nil, newErr(ctx, NotARecord, x, "toMap's argument must be a record")
	}

	if len(rt.Fields) == 0 {
		if x.Type == nil {
			return nil, newErr(ctx, MergeEmptyNeedsAnnotation, x, "toMap of an empty record needs a type annotation")
		}
		if _, err := TypeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		return typed(x, x.Type), nil
	}

	var valueTy ast.Expr
	for _, ty := range rt.Fields {
		if tv, err := TypeWith(ctx, ty); err != nil {
			return nil, err
		} else if c, ok := asConst(tv.Type.Value); !ok || c != ast.Type {
			return nil, newErr(ctx, InvalidFieldType, x, "record field type %s is not a term", debug.Format(ty))
		}
		if valueTy == nil {
			valueTy = ty
		} else if !equal.Equal(valueTy, ty) {
			return nil, newErr(ctx, RecordMismatch, x, "toMap requires every field to have the same type, got %s and %s",
				debug.Format(valueTy), debug.Format(ty))
		}
	}
	entry := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"mapKey":   ast.NewBuiltin(ast.TextType),
		"mapValue": valueTy,
	}}
	resultTy := listOf(entry)
	if x.Type != nil {
		if _, err := TypeWith(ctx, x.Type); err != nil {
			return nil, err
		}
		if !equal.Equal(resultTy, x.Type) {
			return nil, newErr(ctx, MergeAnnotMismatch, x, "toMap's annotated type %s does not match inferred type %s",
				debug.Format(x.Type), debug.Format(resultTy))
		}
	}
	return typed(x, resultTy), nil
}
