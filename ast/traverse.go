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

// MapChildren applies f to every immediate subexpression of e and
// reconstructs e from the results. It is scope-agnostic: callers that need
// to track bound variables while descending (such as Shift and Subst) do
// not use this helper, since they must adjust indices differently for
// children on either side of a binder. MapChildren is for traversals that
// don't care about binding, such as scanning for disallowed nodes.
func MapChildren(e Expr, f func(Expr) Expr) Expr {
	switch x := e.(type) {
	case *Var, *Const, *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *Builtin, *Import:
		return x

	case *Lam:
		return &Lam{Label: x.Label, Type: f(x.Type), Body: f(x.Body)}

	case *Pi:
		return &Pi{Label: x.Label, Domain: f(x.Domain), Codomain: f(x.Codomain)}

	case *App:
		return &App{Fn: f(x.Fn), Arg: f(x.Arg)}

	case *Annot:
		return &Annot{Value: f(x.Value), Type: f(x.Type)}

	case *Let:
		var ty Expr
		if x.Type != nil {
			ty = f(x.Type)
		}
		return &Let{Label: x.Label, Type: ty, Value: f(x.Value), Body: f(x.Body)}

	case *TextLit:
		chunks := make([]TextChunk, len(x.Chunks))
		for i, c := range x.Chunks {
			chunks[i] = TextChunk{Prefix: c.Prefix, Expr: f(c.Expr)}
		}
		return &TextLit{Chunks: chunks, Suffix: x.Suffix}

	case *EmptyList:
		return &EmptyList{Type: f(x.Type)}

	case *NEList:
		elems := make([]Expr, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = f(el)
		}
		return &NEList{Elems: elems}

	case *Some:
		return &Some{Value: f(x.Value)}

	case *RecordType:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, t := range x.Fields {
			fields[l] = f(t)
		}
		return &RecordType{Fields: fields}

	case *RecordLit:
		fields := make(map[Label]Expr, len(x.Fields))
		for l, v := range x.Fields {
			fields[l] = f(v)
		}
		return &RecordLit{Fields: fields}

	case *UnionType:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = f(t)
		}
		return &UnionType{Alternatives: alts}

	case *UnionLit:
		alts := make(map[Label]Expr, len(x.Alternatives))
		for l, t := range x.Alternatives {
			if t == nil {
				alts[l] = nil
				continue
			}
			alts[l] = f(t)
		}
		return &UnionLit{Label: x.Label, Value: f(x.Value), Alternatives: alts}

	case *Field:
		return &Field{Record: f(x.Record), Label: x.Label}

	case *Projection:
		return &Projection{Record: f(x.Record), Labels: x.Labels}

	case *ProjectionByType:
		return &ProjectionByType{Record: f(x.Record), Type: f(x.Type)}

	case *BoolIf:
		return &BoolIf{Cond: f(x.Cond), Then: f(x.Then), Else: f(x.Else)}

	case *Merge:
		var ty Expr
		if x.Type != nil {
			ty = f(x.Type)
		}
		return &Merge{Handlers: f(x.Handlers), Union: f(x.Union), Type: ty}

	case *ToMap:
		var ty Expr
		if x.Type != nil {
			ty = f(x.Type)
		}
		return &ToMap{Record: f(x.Record), Type: ty}

	case *Assert:
		return &Assert{Annotation: f(x.Annotation)}

	case *BinaryExpr:
		return &BinaryExpr{Op: x.Op, L: f(x.L), R: f(x.R)}
	}
	panic("ast.MapChildren: unhandled expression type")
}

// TraverseChildren calls f on every immediate subexpression of e, in
// left-to-right source order, stopping at the first error.
func TraverseChildren(e Expr, f func(Expr) error) error {
	var first error
	visit := func(c Expr) Expr {
		if first == nil {
			first = f(c)
		}
		return c
	}
	MapChildren(e, visit)
	return first
}

// ContainsImport reports whether e or any subexpression is an unresolved
// Import node. A fully resolved tree must never contain one; this helper
// lets callers assert that invariant before type-checking.
func ContainsImport(e Expr) bool {
	if _, ok := e.(*Import); ok {
		return true
	}
	found := false
	_ = TraverseChildren(e, func(c Expr) error {
		if ContainsImport(c) {
			found = true
		}
		return nil
	})
	return found
}
