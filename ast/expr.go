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

package ast

import "github.com/cockroachdb/apd/v2"

// Lam is a lambda abstraction: λ(x : Type) -> body.
type Lam struct {
	Label Label
	Type  Expr
	Body  Expr
}

func (*Lam) node()     {}
func (*Lam) exprNode() {}

// Pi is a dependent function type: ∀(x : A) -> B, where B may mention x.
type Pi struct {
	Label    Label
	Domain   Expr
	Codomain Expr
}

func (*Pi) node()     {}
func (*Pi) exprNode() {}

// App is function application: f a.
type App struct {
	Fn  Expr
	Arg Expr
}

func (*App) node()     {}
func (*App) exprNode() {}

// Annot is a type annotation: e : τ.
type Annot struct {
	Value Expr
	Type  Expr
}

func (*Annot) node()     {}
func (*Annot) exprNode() {}

// Let is a let-binding: let x : τ = v in body. Type is nil when no
// annotation was given.
type Let struct {
	Label Label
	Type  Expr // optional
	Value Expr
	Body  Expr
}

func (*Let) node()     {}
func (*Let) exprNode() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Val bool
}

func (*BoolLit) node()     {}
func (*BoolLit) exprNode() {}

// NaturalLit is an arbitrary-width non-negative integer literal.
type NaturalLit struct {
	Val apd.Decimal
}

func (*NaturalLit) node()     {}
func (*NaturalLit) exprNode() {}

// NewNatural returns a NaturalLit for a small non-negative value.
func NewNatural(n uint64) *NaturalLit {
	d := new(apd.Decimal)
	d.SetUint64(n)
	return &NaturalLit{Val: *d}
}

// IntegerLit is an arbitrary-width signed integer literal.
type IntegerLit struct {
	Val apd.Decimal
}

func (*IntegerLit) node()     {}
func (*IntegerLit) exprNode() {}

// NewInteger returns an IntegerLit for a small value.
func NewInteger(n int64) *IntegerLit {
	d := apd.New(n, 0)
	return &IntegerLit{Val: *d}
}

// DoubleLit is an IEEE-754 double literal. Equality on doubles is
// bit-pattern equality, so two NaN literals with the same bit pattern
// compare equal; this is why the field is the raw bit pattern rather than
// a float64 (which loses that distinction under Go's == on NaN).
type DoubleLit struct {
	Bits uint64
}

func (*DoubleLit) node()     {}
func (*DoubleLit) exprNode() {}

// TextChunk is one piece of a text literal: a literal prefix followed by an
// interpolated expression. Every chunk's Expr is non-nil; the text after
// the last interpolation is held in TextLit.Suffix.
type TextChunk struct {
	Prefix string
	Expr   Expr
}

// TextLit is a (possibly interpolated) text literal:
// "prefix \(e1) middle \(e2) suffix".
type TextLit struct {
	Chunks []TextChunk
	Suffix string
}

func (*TextLit) node()     {}
func (*TextLit) exprNode() {}

// NewText returns a non-interpolated text literal.
func NewText(s string) *TextLit {
	return &TextLit{Suffix: s}
}

// EmptyList is `[] : List T`.
type EmptyList struct {
	Type Expr // List T
}

func (*EmptyList) node()     {}
func (*EmptyList) exprNode() {}

// NEList is a non-empty list literal `[a, b, c]`.
type NEList struct {
	Elems []Expr
}

func (*NEList) node()     {}
func (*NEList) exprNode() {}

// Some wraps a value in `Some e`, the non-empty Optional constructor.
type Some struct {
	Value Expr
}

func (*Some) node()     {}
func (*Some) exprNode() {}

// RecordType is `{ label : τ, ... }`. Fields is unordered, matching Dhall's
// semantics for record types.
type RecordType struct {
	Fields map[Label]Expr
}

func (*RecordType) node()     {}
func (*RecordType) exprNode() {}

// RecordLit is `{ label = e, ... }`.
type RecordLit struct {
	Fields map[Label]Expr
}

func (*RecordLit) node()     {}
func (*RecordLit) exprNode() {}

// UnionType is `< label : τ | label2 | ... >`. A nil map value means the
// alternative carries no payload.
type UnionType struct {
	Alternatives map[Label]Expr
}

func (*UnionType) node()     {}
func (*UnionType) exprNode() {}

// UnionLit is a union value with one active alternative: the anonymous
// literal syntax `< Label = Value | Alternatives... >`. Alternatives holds
// the types of the other alternatives this value's union type would carry
// (nil for a payload-less alternative), matching the asymmetry between the
// single chosen alternative's value and its siblings' mere types.
type UnionLit struct {
	Label        Label
	Value        Expr
	Alternatives map[Label]Expr
}

func (*UnionLit) node()     {}
func (*UnionLit) exprNode() {}

// Field projects a single label out of a record: `e.label`.
type Field struct {
	Record Expr
	Label  Label
}

func (*Field) node()     {}
func (*Field) exprNode() {}

// Projection selects a subset of a record's labels: `e.{a, b}`.
type Projection struct {
	Record Expr
	Labels []Label
}

func (*Projection) node()     {}
func (*Projection) exprNode() {}

// ProjectionByType selects the fields of e named by the fields of Type:
// `e.(T)`.
type ProjectionByType struct {
	Record Expr
	Type   Expr
}

func (*ProjectionByType) node()     {}
func (*ProjectionByType) exprNode() {}

// BoolIf is `if cond then t else f`.
type BoolIf struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*BoolIf) node()     {}
func (*BoolIf) exprNode() {}

// Merge eliminates a union value against a record of per-alternative
// handlers: `merge handlers union : T`. Type is nil when omitted (only
// legal when the result is not an empty merge).
type Merge struct {
	Handlers Expr
	Union    Expr
	Type     Expr // optional
}

func (*Merge) node()     {}
func (*Merge) exprNode() {}

// ToMap converts a record into a List of { mapKey, mapValue } entries:
// `toMap r : T`. Type is nil when omitted.
type ToMap struct {
	Record Expr
	Type   Expr // optional
}

func (*ToMap) node()     {}
func (*ToMap) exprNode() {}

// Assert checks that its argument's type is a provably-true equivalence:
// `assert : x === y`.
type Assert struct {
	Annotation Expr
}

func (*Assert) node()     {}
func (*Assert) exprNode() {}

// Import is a placeholder for an unresolved import. A fully resolved tree,
// the only kind this package's consumers operate on, never contains one:
// encountering it is an internal invariant violation, not a recoverable
// type error.
type Import struct{}

func (*Import) node()     {}
func (*Import) exprNode() {}
