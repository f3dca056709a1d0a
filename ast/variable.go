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

// Var is a reference to a lexically bound name. Dhall variables are not
// plain De Bruijn indices: Index counts, from the innermost scope outward,
// how many binders sharing Name must be skipped before reaching the one
// this variable refers to.
type Var struct {
	Name  Label
	Index int
}

func (*Var) node()     {}
func (*Var) exprNode() {}

// NewVar returns a reference to the Index-th (innermost-first) binder named
// name.
func NewVar(name Label, index int) *Var {
	return &Var{Name: name, Index: index}
}

// Equal reports whether v and w refer to the same (name, index) pair.
func (v Var) Equal(w Var) bool {
	return v.Name == w.Name && v.Index == w.Index
}

// Shift adjusts free occurrences of variables named v.Name with index at
// least v.Index by d. It is used when an expression is pushed under a new
// binder (d == 1) or lifted out from under one (d == -1).
//
// Bound occurrences are left untouched: descending under a binder for v.Name
// increments the threshold so occurrences that refer to that binder (or an
// outer one) are distinguished correctly from occurrences of an unrelated,
// same-named free variable.
func Shift(d int, v Var, e Expr) Expr {
	switch x := e.(type) {
	case *Var:
		if x.Name == v.Name && x.Index >= v.Index {
			return NewVar(x.Name, x.Index+d)
		}
		return x

	case *Const:
		return x

	case *Lam:
		t := Shift(d, v, x.Type)
		inner := v
		if x.Label == v.Name {
			inner.Index++
		}
		b := Shift(d, inner, x.Body)
		return &Lam{Label: x.Label, Type: t, Body: b}

	case *Pi:
		in := Shift(d, v, x.Domain)
		inner := v
		if x.Label == v.Name {
			inner.Index++
		}
		out := Shift(d, inner, x.Codomain)
		return &Pi{Label: x.Label, Domain: in, Codomain: out}

	case *App:
		return &App{Fn: Shift(d, v, x.Fn), Arg: Shift(d, v, x.Arg)}

	case *Annot:
		return &Annot{Value: Shift(d, v, x.Value), Type: Shift(d, v, x.Type)}

	case *Let:
		var ty Expr
		if x.Type != nil {
			ty = Shift(d, v, x.Type)
		}
		val := Shift(d, v, x.Value)
		inner := v
		if x.Label == v.Name {
			inner.Index++
		}
		body := Shift(d, inner, x.Body)
		return &Let{Label: x.Label, Type: ty, Value: val, Body: body}

	case *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *Builtin:
		return x

	case *TextLit:
		chunks := make([]TextChunk, len(x.Chunks))
		for i, c := range x.Chunks {
			chunks[i] = TextChunk{Prefix: c.Prefix, Expr: Shift(d, v, c.Expr)}
		}
		return &TextLit{Chunks: chunks, Suffix: x.Suffix}

	case *EmptyList:
		return &EmptyList{Type: Shift(d, v, x.Type)}

	case *NEList:
		elems := make([]Expr, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = Shift(d, v, el)
		}
		return &NEList{Elems: elems}

	case *Some:
		return &Some{Value: Shift(d, v, x.Value)}

	case *RecordType:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = Shift(d, v, t)
		}
		return &RecordType{Fields: fields}

	case *RecordLit:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = Shift(d, v, t)
		}
		return &RecordLit{Fields: fields}

	case *UnionType:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = Shift(d, v, t)
		}
		return &UnionType{Alternatives: alts}

	case *UnionLit:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = Shift(d, v, t)
		}
		return &UnionLit{Label: x.Label, Value: Shift(d, v, x.Value), Alternatives: alts}

	case *Field:
		return &Field{Record: Shift(d, v, x.Record), Label: x.Label}

	case *Projection:
		return &Projection{Record: Shift(d, v, x.Record), Labels: x.Labels}

	case *ProjectionByType:
		return &ProjectionByType{Record: Shift(d, v, x.Record), Type: Shift(d, v, x.Type)}

	case *BoolIf:
		return &BoolIf{
			Cond: Shift(d, v, x.Cond),
			Then: Shift(d, v, x.Then),
			Else: Shift(d, v, x.Else),
		}

	case *Merge:
		var ty Expr
		if x.Type != nil {
			ty = Shift(d, v, x.Type)
		}
		return &Merge{
			Handlers: Shift(d, v, x.Handlers),
			Union:    Shift(d, v, x.Union),
			Type:     ty,
		}

	case *ToMap:
		var ty Expr
		if x.Type != nil {
			ty = Shift(d, v, x.Type)
		}
		return &ToMap{Record: Shift(d, v, x.Record), Type: ty}

	case *Assert:
		return &Assert{Annotation: Shift(d, v, x.Annotation)}

	case *BinaryExpr:
		return &BinaryExpr{Op: x.Op, L: Shift(d, v, x.L), R: Shift(d, v, x.R)}

	case *Import:
		return x
	}
	panic("ast.Shift: unhandled expression type")
}

// Subst replaces free occurrences of v in e with value, shifting value by
// +1 on every binder crossed so that its free variables continue to refer
// to the same bindings once placed under deeper scope. This is the "fused"
// shift+substitute traversal: each recursive step performs both operations
// in a single pass rather than two.
func Subst(v Var, value Expr, e Expr) Expr {
	switch x := e.(type) {
	case *Var:
		switch {
		case x.Name == v.Name && x.Index == v.Index:
			return value
		case x.Name == v.Name && x.Index > v.Index:
			return NewVar(x.Name, x.Index-1)
		default:
			return x
		}

	case *Const:
		return x

	case *Lam:
		t := Subst(v, value, x.Type)
		innerV := v
		innerVal := value
		if x.Label == v.Name {
			innerV.Index++
		}
		innerVal = Shift(1, Var{Name: x.Label, Index: 0}, innerVal)
		b := Subst(innerV, innerVal, x.Body)
		return &Lam{Label: x.Label, Type: t, Body: b}

	case *Pi:
		in := Subst(v, value, x.Domain)
		innerV := v
		innerVal := Shift(1, Var{Name: x.Label, Index: 0}, value)
		if x.Label == v.Name {
			innerV.Index++
		}
		out := Subst(innerV, innerVal, x.Codomain)
		return &Pi{Label: x.Label, Domain: in, Codomain: out}

	case *App:
		return &App{Fn: Subst(v, value, x.Fn), Arg: Subst(v, value, x.Arg)}

	case *Annot:
		return &Annot{Value: Subst(v, value, x.Value), Type: Subst(v, value, x.Type)}

	case *Let:
		var ty Expr
		if x.Type != nil {
			ty = Subst(v, value, x.Type)
		}
		val := Subst(v, value, x.Value)
		innerV := v
		innerVal := Shift(1, Var{Name: x.Label, Index: 0}, value)
		if x.Label == v.Name {
			innerV.Index++
		}
		body := Subst(innerV, innerVal, x.Body)
		return &Let{Label: x.Label, Type: ty, Value: val, Body: body}

	case *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *Builtin:
		return x

	case *TextLit:
		chunks := make([]TextChunk, len(x.Chunks))
		for i, c := range x.Chunks {
			chunks[i] = TextChunk{Prefix: c.Prefix, Expr: Subst(v, value, c.Expr)}
		}
		return &TextLit{Chunks: chunks, Suffix: x.Suffix}

	case *EmptyList:
		return &EmptyList{Type: Subst(v, value, x.Type)}

	case *NEList:
		elems := make([]Expr, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = Subst(v, value, el)
		}
		return &NEList{Elems: elems}

	case *Some:
		return &Some{Value: Subst(v, value, x.Value)}

	case *RecordType:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = Subst(v, value, t)
		}
		return &RecordType{Fields: fields}

	case *RecordLit:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = Subst(v, value, t)
		}
		return &RecordLit{Fields: fields}

	case *UnionType:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = Subst(v, value, t)
		}
		return &UnionType{Alternatives: alts}

	case *UnionLit:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = Subst(v, value, t)
		}
		return &UnionLit{Label: x.Label, Value: Subst(v, value, x.Value), Alternatives: alts}

	case *Field:
		return &Field{Record: Subst(v, value, x.Record), Label: x.Label}

	case *Projection:
		return &Projection{Record: Subst(v, value, x.Record), Labels: x.Labels}

	case *ProjectionByType:
		return &ProjectionByType{Record: Subst(v, value, x.Record), Type: Subst(v, value, x.Type)}

	case *BoolIf:
		return &BoolIf{
			Cond: Subst(v, value, x.Cond),
			Then: Subst(v, value, x.Then),
			Else: Subst(v, value, x.Else),
		}

	case *Merge:
		var ty Expr
		if x.Type != nil {
			ty = Subst(v, value, x.Type)
		}
		return &Merge{
			Handlers: Subst(v, value, x.Handlers),
			Union:    Subst(v, value, x.Union),
			Type:     ty,
		}

	case *ToMap:
		var ty Expr
		if x.Type != nil {
			ty = Subst(v, value, x.Type)
		}
		return &ToMap{Record: Subst(v, value, x.Record), Type: ty}

	case *Assert:
		return &Assert{Annotation: Subst(v, value, x.Annotation)}

	case *BinaryExpr:
		return &BinaryExpr{Op: x.Op, L: Subst(v, value, x.L), R: Subst(v, value, x.R)}

	case *Import:
		return x
	}
	panic("ast.Subst: unhandled expression type")
}
