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
	"github.com/dhall-lang/dhall-go/internal/errs"
	"github.com/dhall-lang/dhall-go/internal/tyctx"
)

// Side names which operand of a binary rule a diagnostic is about.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

func (s Side) String() string {
	if s == LeftSide {
		return "left"
	}
	return "right"
}

// Code identifies the kind of type error, independent of its formatted
// message. Each constructor below names one row of the error taxonomy.
type Code int

const (
	UnboundVariable Code = iota
	InvalidInputType
	InvalidOutputType
	NotAFunction
	TypeMismatch
	AnnotMismatch
	InvalidPredicate
	IfBranchMustBeTerm
	IfBranchMismatch
	InvalidListType
	InvalidListElement
	InvalidOptionalType
	InvalidFieldType
	RecordTypeDuplicateField
	UnionTypeDuplicateField
	NotARecord
	MissingRecordField
	MissingUnionField
	BinOpTypeMismatch
	RecordMismatch
	MustCombineRecord
	FieldCollision
	RecordTypeMergeRequiresRecordType
	RecordTypeMismatch
	EquivalenceArgumentMustBeTerm
	EquivalenceTypeMismatch
	AssertMustTakeEquivalence
	AssertMismatch
	Merge1ArgMustBeRecord
	Merge2ArgMustBeUnion
	MergeAnnotMismatch
	MergeEmptyNeedsAnnotation
	MergeHandlerTypeMismatch
	MergeHandlerMissingVariant
	MergeVariantMissingHandler
	MergeHandlerReturnTypeMustNotBeDependent
	ProjectionMustBeRecord
	ProjectionMissingEntry
	SortHasNoType
)

// Error is a structured type error: the offending sub-expression, the
// typing context at the point of failure, and a formatted message.
type Error struct {
	Code Code
	Expr ast.Expr
	Ctx  *tyctx.Context
	Err  errs.Error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func newErr(ctx *tyctx.Context, code Code, offending ast.Expr, format string, args ...interface{}) *Error {
	return &Error{Code: code, Expr: offending, Ctx: ctx, Err: errs.Newf(format, args...)}
}
