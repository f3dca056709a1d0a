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

package whnf

import "github.com/dhall-lang/dhall-go/ast"

func whnfBinary(x *ast.BinaryExpr) ast.Expr {
	switch x.Op {
	case ast.ImportAltOp:
		panic("whnf: ImportAlt operator reached the normalizer; imports must already be resolved")
	case ast.EquivalentOp:
		// A type former, not a reducible term: its operands stay lazy.
		return x
	}

	l := WHNF(x.L)
	r := WHNF(x.R)

	switch x.Op {
	case ast.OrOp:
		if lb, ok := l.(*ast.BoolLit); ok {
			if lb.Val {
				return l
			}
			return r
		}
		if rb, ok := r.(*ast.BoolLit); ok && !rb.Val {
			return l
		}

	case ast.AndOp:
		if lb, ok := l.(*ast.BoolLit); ok {
			if !lb.Val {
				return l
			}
			return r
		}
		if rb, ok := r.(*ast.BoolLit); ok && rb.Val {
			return l
		}

	case ast.EqOp:
		if lb, lok := l.(*ast.BoolLit); lok {
			if lb.Val {
				return r
			}
		}
		if rb, rok := r.(*ast.BoolLit); rok {
			if rb.Val {
				return l
			}
		}
		if lb, lok := l.(*ast.BoolLit); lok {
			if rb, rok := r.(*ast.BoolLit); rok {
				return &ast.BoolLit{Val: lb.Val == rb.Val}
			}
		}

	case ast.NotEqOp:
		if lb, lok := l.(*ast.BoolLit); lok {
			if !lb.Val {
				return r
			}
		}
		if rb, rok := r.(*ast.BoolLit); rok {
			if !rb.Val {
				return l
			}
		}
		if lb, lok := l.(*ast.BoolLit); lok {
			if rb, rok := r.(*ast.BoolLit); rok {
				return &ast.BoolLit{Val: lb.Val != rb.Val}
			}
		}

	case ast.PlusOp:
		ln, lok := l.(*ast.NaturalLit)
		rn, rok := r.(*ast.NaturalLit)
		if lok && isZero(ln.Val) {
			return r
		}
		if rok && isZero(rn.Val) {
			return l
		}
		if lok && rok {
			return &ast.NaturalLit{Val: addNat(ln.Val, rn.Val)}
		}

	case ast.TimesOp:
		ln, lok := l.(*ast.NaturalLit)
		rn, rok := r.(*ast.NaturalLit)
		if lok && isZero(ln.Val) {
			return l
		}
		if rok && isZero(rn.Val) {
			return r
		}
		if lok && cmpNat(ln.Val, one) == 0 {
			return r
		}
		if rok && cmpNat(rn.Val, one) == 0 {
			return l
		}
		if lok && rok {
			return &ast.NaturalLit{Val: mulNat(ln.Val, rn.Val)}
		}

	case ast.TextAppendOp:
		lt, lok := l.(*ast.TextLit)
		rt, rok := r.(*ast.TextLit)
		if lok && isEmptyText(lt) {
			return r
		}
		if rok && isEmptyText(rt) {
			return l
		}
		if lok && rok {
			return appendText(lt, rt)
		}

	case ast.ListAppendOp:
		le, lIsEmpty := l.(*ast.EmptyList)
		re, rIsEmpty := r.(*ast.EmptyList)
		ln, lIsNE := l.(*ast.NEList)
		rn, rIsNE := r.(*ast.NEList)
		switch {
		case lIsEmpty && rIsEmpty:
			return le
		case lIsEmpty:
			return r
		case rIsEmpty:
			return l
		case lIsNE && rIsNE:
			elems := make([]ast.Expr, 0, len(ln.Elems)+len(rn.Elems))
			elems = append(elems, ln.Elems...)
			elems = append(elems, rn.Elems...)
			return &ast.NEList{Elems: elems}
		}

	case ast.RecordMergeOp:
		lr, lok := l.(*ast.RecordLit)
		rr, rok := r.(*ast.RecordLit)
		if lok && len(lr.Fields) == 0 {
			return r
		}
		if rok && len(rr.Fields) == 0 {
			return l
		}
		if lok && rok {
			fields := make(map[ast.Label]ast.Expr, len(lr.Fields)+len(rr.Fields))
			for k, v := range lr.Fields {
				fields[k] = v
			}
			for k, v := range rr.Fields {
				fields[k] = v
			}
			return &ast.RecordLit{Fields: fields}
		}

	case ast.RecordMergeAllOp:
		lr, lok := l.(*ast.RecordLit)
		rr, rok := r.(*ast.RecordLit)
		if lok && len(lr.Fields) == 0 {
			return r
		}
		if rok && len(rr.Fields) == 0 {
			return l
		}
		if lok && rok {
			return recordMergeAll(lr, rr)
		}

	case ast.RecordTypeMergeOp:
		lt, lok := l.(*ast.RecordType)
		rt, rok := r.(*ast.RecordType)
		if lok && len(lt.Fields) == 0 {
			return r
		}
		if rok && len(rt.Fields) == 0 {
			return l
		}
		if lok && rok {
			return recordTypeMergeAll(lt, rt)
		}
	}

	return &ast.BinaryExpr{Op: x.Op, L: l, R: r}
}

var one = ast.NewNatural(1).Val

func recordMergeAll(l, r *ast.RecordLit) *ast.RecordLit {
	fields := make(map[ast.Label]ast.Expr, len(l.Fields)+len(r.Fields))
	for k, v := range l.Fields {
		fields[k] = v
	}
	for k, rv := range r.Fields {
		lv, overlap := fields[k]
		if !overlap {
			fields[k] = rv
			continue
		}
		lrec, lok := WHNF(lv).(*ast.RecordLit)
		rrec, rok := WHNF(rv).(*ast.RecordLit)
		if lok && rok {
			fields[k] = recordMergeAll(lrec, rrec)
		} else {
			fields[k] = rv
		}
	}
	return &ast.RecordLit{Fields: fields}
}

func recordTypeMergeAll(l, r *ast.RecordType) *ast.RecordType {
	fields := make(map[ast.Label]ast.Expr, len(l.Fields)+len(r.Fields))
	for k, v := range l.Fields {
		fields[k] = v
	}
	for k, rv := range r.Fields {
		lv, overlap := fields[k]
		if !overlap {
			fields[k] = rv
			continue
		}
		lrec, lok := WHNF(lv).(*ast.RecordType)
		rrec, rok := WHNF(rv).(*ast.RecordType)
		if lok && rok {
			fields[k] = recordTypeMergeAll(lrec, rrec)
		} else {
			fields[k] = rv
		}
	}
	return &ast.RecordType{Fields: fields}
}

func isEmptyText(t *ast.TextLit) bool {
	return len(t.Chunks) == 0 && t.Suffix == ""
}

// appendText concatenates two text literals, splicing the boundary
// between l's trailing literal suffix and r's leading literal prefix so
// that adjacent literal pieces don't stay needlessly split across chunks.
func appendText(l, r *ast.TextLit) *ast.TextLit {
	if len(r.Chunks) == 0 {
		return &ast.TextLit{Chunks: l.Chunks, Suffix: l.Suffix + r.Suffix}
	}
	chunks := make([]ast.TextChunk, 0, len(l.Chunks)+len(r.Chunks))
	chunks = append(chunks, l.Chunks...)
	chunks = append(chunks, ast.TextChunk{Prefix: l.Suffix + r.Chunks[0].Prefix, Expr: r.Chunks[0].Expr})
	chunks = append(chunks, r.Chunks[1:]...)
	return &ast.TextLit{Chunks: chunks, Suffix: r.Suffix}
}
