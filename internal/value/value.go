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

// Package value holds the result type produced by every successful
// type-checking judgement.
package value

import "github.com/dhall-lang/dhall-go/ast"

// A Value is an expression that is understood to be in, or lazily
// reducible to, weak head normal form. It is a plain type alias rather
// than a distinct representation: Dhall's single syntactic category means
// terms, types, and normal forms all live in the same ast.Expr tree, so a
// parallel Value algebra would add nothing but indirection. See
// internal/whnf for the function that actually drives reduction.
type Value = ast.Expr

// TypedValue pairs a value with its type, which is itself held as a
// TypedValue. Every typing judgement in internal/typecheck produces one of
// these, filled in one level deep: the type's own Type is left nil, also
// for types such as Natural that do have a type.
type TypedValue struct {
	Value Value
	Type  *TypedValue
}

// New builds a TypedValue from a value and its type.
func New(v Value, t *TypedValue) *TypedValue {
	return &TypedValue{Value: v, Type: t}
}

// ConstOf is a convenience constructor for the TypedValue of a bare
// universe literal, used whenever a rule types something directly against
// Type, Kind, or Sort.
func ConstOf(u ast.Universe) *TypedValue {
	return New(ast.NewConst(u), nil)
}
