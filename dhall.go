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

// Package dhall implements the bidirectional type-checker and normalizer
// for the Dhall configuration language's expression tree. It takes an
// already-resolved ast.Expr (one with no remaining Import nodes or
// ImportAlt operators) and decides whether it is well-typed, and if so,
// reduces it to weak head normal form.
//
// Parsing Dhall source text into an ast.Expr, resolving imports, and CBOR
// (de)serialization are outside this package's scope: callers are expected
// to supply an already-resolved tree, however they obtained it.
package dhall

import (
	"github.com/dhall-lang/dhall-go/ast"
	"github.com/dhall-lang/dhall-go/internal/typecheck"
	"github.com/dhall-lang/dhall-go/internal/whnf"
)

// Expr is the resolved Dhall expression tree type-checked and normalized by
// this package.
type Expr = ast.Expr

// TypedValue pairs a checked expression with its inferred type.
type TypedValue struct {
	Value Expr
	Type  Expr
}

// TypeError reports why an expression failed to type-check. Code
// identifies the kind of failure (see the Err* constants); Expr is the
// offending sub-expression.
type TypeError struct {
	Code Code
	Expr Expr
	err  *typecheck.Error
}

func (e *TypeError) Error() string { return e.err.Error() }

func (e *TypeError) Unwrap() error { return e.err }

// Code identifies the kind of type error reported by TypeError.
type Code = typecheck.Code

// The error kinds a TypeCheck or TypeCheckAgainst call can report.
const (
	ErrUnboundVariable                          = typecheck.UnboundVariable
	ErrInvalidInputType                         = typecheck.InvalidInputType
	ErrInvalidOutputType                        = typecheck.InvalidOutputType
	ErrNotAFunction                             = typecheck.NotAFunction
	ErrTypeMismatch                             = typecheck.TypeMismatch
	ErrAnnotMismatch                            = typecheck.AnnotMismatch
	ErrInvalidPredicate                         = typecheck.InvalidPredicate
	ErrIfBranchMustBeTerm                       = typecheck.IfBranchMustBeTerm
	ErrIfBranchMismatch                         = typecheck.IfBranchMismatch
	ErrInvalidListType                          = typecheck.InvalidListType
	ErrInvalidListElement                       = typecheck.InvalidListElement
	ErrInvalidOptionalType                      = typecheck.InvalidOptionalType
	ErrInvalidFieldType                         = typecheck.InvalidFieldType
	ErrRecordTypeDuplicateField                 = typecheck.RecordTypeDuplicateField
	ErrUnionTypeDuplicateField                  = typecheck.UnionTypeDuplicateField
	ErrNotARecord                               = typecheck.NotARecord
	ErrMissingRecordField                       = typecheck.MissingRecordField
	ErrMissingUnionField                        = typecheck.MissingUnionField
	ErrBinOpTypeMismatch                        = typecheck.BinOpTypeMismatch
	ErrRecordMismatch                           = typecheck.RecordMismatch
	ErrMustCombineRecord                        = typecheck.MustCombineRecord
	ErrFieldCollision                           = typecheck.FieldCollision
	ErrRecordTypeMergeRequiresRecordType        = typecheck.RecordTypeMergeRequiresRecordType
	ErrRecordTypeMismatch                       = typecheck.RecordTypeMismatch
	ErrEquivalenceArgumentMustBeTerm            = typecheck.EquivalenceArgumentMustBeTerm
	ErrEquivalenceTypeMismatch                  = typecheck.EquivalenceTypeMismatch
	ErrAssertMustTakeEquivalence                = typecheck.AssertMustTakeEquivalence
	ErrAssertMismatch                           = typecheck.AssertMismatch
	ErrMerge1ArgMustBeRecord                    = typecheck.Merge1ArgMustBeRecord
	ErrMerge2ArgMustBeUnion                     = typecheck.Merge2ArgMustBeUnion
	ErrMergeAnnotMismatch                       = typecheck.MergeAnnotMismatch
	ErrMergeEmptyNeedsAnnotation                = typecheck.MergeEmptyNeedsAnnotation
	ErrMergeHandlerTypeMismatch                 = typecheck.MergeHandlerTypeMismatch
	ErrMergeHandlerMissingVariant               = typecheck.MergeHandlerMissingVariant
	ErrMergeVariantMissingHandler               = typecheck.MergeVariantMissingHandler
	ErrMergeHandlerReturnTypeMustNotBeDependent = typecheck.MergeHandlerReturnTypeMustNotBeDependent
	ErrProjectionMustBeRecord                   = typecheck.ProjectionMustBeRecord
	ErrProjectionMissingEntry                   = typecheck.ProjectionMissingEntry
	ErrSortHasNoType                            = typecheck.SortHasNoType
)

func wrap(err error) error {
	if err == nil {
		return nil
	}
	te, ok := err.(*typecheck.Error)
	if !ok {
		return err
	}
	return &TypeError{Code: te.Code, Expr: te.Expr, err: te}
}

// TypeCheck infers e's type. On success it returns the checked value
// together with its type; on failure it returns a *TypeError.
func TypeCheck(e Expr) (*TypedValue, error) {
	tv, err := typecheck.TypeCheck(e)
	if err != nil {
		return nil, wrap(err)
	}
	return &TypedValue{Value: tv.Value, Type: tv.Type.Value}, nil
}

// TypeCheckAgainst checks that e has type ty.
func TypeCheckAgainst(e, ty Expr) (*TypedValue, error) {
	tv, err := typecheck.TypeCheckAgainst(e, ty)
	if err != nil {
		return nil, wrap(err)
	}
	return &TypedValue{Value: tv.Value, Type: tv.Type.Value}, nil
}

// Normalize reduces a checked value: it puts the value in weak head normal
// form and then normalizes, recursively, the children of lambdas, Pi types,
// applications, lists, Some, records and unions. Other nodes are returned
// as weak head normalization leaves them. It assumes tv came
// from TypeCheck or TypeCheckAgainst: normalizing an ill-typed expression
// is not guaranteed to terminate.
func Normalize(tv *TypedValue) Expr {
	return normalize(tv.Value)
}

func normalize(e Expr) Expr {
	e = whnf.WHNF(e)
	switch x := e.(type) {
	case *ast.Lam:
		return &ast.Lam{Label: x.Label, Type: normalize(x.Type), Body: normalize(x.Body)}
	case *ast.Pi:
		return &ast.Pi{Label: x.Label, Domain: normalize(x.Domain), Codomain: normalize(x.Codomain)}
	case *ast.App:
		return &ast.App{Fn: normalize(x.Fn), Arg: normalize(x.Arg)}
	case *ast.EmptyList:
		return &ast.EmptyList{Type: normalize(x.Type)}
	case *ast.NEList:
		elems := make([]ast.Expr, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = normalize(el)
		}
		return &ast.NEList{Elems: elems}
	case *ast.Some:
		return &ast.Some{Value: normalize(x.Value)}
	case *ast.RecordType:
		fields := make(map[ast.Label]ast.Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = normalize(t)
		}
		return &ast.RecordType{Fields: fields}
	case *ast.RecordLit:
		fields := make(map[ast.Label]ast.Expr, len(x.Fields))
		for l, v := range x.Fields {
			fields[l] = normalize(v)
		}
		return &ast.RecordLit{Fields: fields}
	case *ast.UnionType:
		alts := make(map[ast.Label]ast.Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = normalize(t)
		}
		return &ast.UnionType{Alternatives: alts}
	case *ast.UnionLit:
		var v ast.Expr
		if x.Value != nil {
			v = normalize(x.Value)
		}
		alts := make(map[ast.Label]ast.Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = normalize(t)
		}
		return &ast.UnionLit{Label: x.Label, Value: v, Alternatives: alts}
	default:
		return x
	}
}
