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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-lang/dhall-go/ast"
)

func TestWHNFNaturalPlusShortCircuitsOnZero(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.PlusOp, L: ast.NewNatural(0), R: ast.NewVar("x", 0)}
	assert.Equal(t, ast.NewVar("x", 0), WHNF(e))
}

func TestWHNFNaturalPlusAddsLiterals(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.PlusOp, L: ast.NewNatural(2), R: ast.NewNatural(3)}
	assert.Equal(t, ast.NewNatural(5), WHNF(e))
}

func TestWHNFNaturalTimesShortCircuitsOnOne(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.TimesOp, L: ast.NewNatural(1), R: ast.NewVar("x", 0)}
	assert.Equal(t, ast.NewVar("x", 0), WHNF(e))
}

func TestWHNFNaturalTimesMultipliesLiterals(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.TimesOp, L: ast.NewNatural(4), R: ast.NewNatural(5)}
	assert.Equal(t, ast.NewNatural(20), WHNF(e))
}

func TestWHNFAndShortCircuitsOnFalse(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.AndOp, L: &ast.BoolLit{Val: false}, R: ast.NewVar("x", 0)}
	assert.Equal(t, &ast.BoolLit{Val: false}, WHNF(e))
}

func TestWHNFOrShortCircuitsOnTrue(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.OrOp, L: &ast.BoolLit{Val: true}, R: ast.NewVar("x", 0)}
	assert.Equal(t, &ast.BoolLit{Val: true}, WHNF(e))
}

func TestWHNFEqOfLiterals(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.EqOp, L: &ast.BoolLit{Val: true}, R: &ast.BoolLit{Val: false}}
	assert.Equal(t, &ast.BoolLit{Val: false}, WHNF(e))
}

func TestWHNFTextAppendConcatenatesLiterals(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.TextAppendOp, L: ast.NewText("foo"), R: ast.NewText("bar")}
	assert.Equal(t, ast.NewText("foobar"), WHNF(e))
}

func TestWHNFTextAppendSplicesAcrossInterpolation(t *testing.T) {
	l := &ast.TextLit{Chunks: []ast.TextChunk{{Prefix: "a", Expr: ast.NewVar("x", 0)}}, Suffix: "b"}
	r := ast.NewText("c")
	got := WHNF(&ast.BinaryExpr{Op: ast.TextAppendOp, L: l, R: r}).(*ast.TextLit)
	require.Len(t, got.Chunks, 1)
	assert.Equal(t, "a", got.Chunks[0].Prefix)
	assert.Equal(t, "bc", got.Suffix)
}

func TestWHNFListAppendConcatenatesNonEmptyLists(t *testing.T) {
	l := &ast.NEList{Elems: []ast.Expr{ast.NewNatural(1)}}
	r := &ast.NEList{Elems: []ast.Expr{ast.NewNatural(2)}}
	got := WHNF(&ast.BinaryExpr{Op: ast.ListAppendOp, L: l, R: r}).(*ast.NEList)
	assert.Equal(t, []ast.Expr{ast.NewNatural(1), ast.NewNatural(2)}, got.Elems)
}

func TestWHNFListAppendEmptyIsIdentity(t *testing.T) {
	empty := &ast.EmptyList{Type: ast.NewBuiltin(ast.NaturalType)}
	ne := &ast.NEList{Elems: []ast.Expr{ast.NewNatural(1)}}
	assert.Equal(t, ne, WHNF(&ast.BinaryExpr{Op: ast.ListAppendOp, L: empty, R: ne}))
	assert.Equal(t, ne, WHNF(&ast.BinaryExpr{Op: ast.ListAppendOp, L: ne, R: empty}))
}

func TestWHNFRecordMergeAllRecursesIntoNestedRecords(t *testing.T) {
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"a": &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(1)}},
	}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"a": &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"y": ast.NewNatural(2)}},
		"b": ast.NewNatural(3),
	}}
	got := WHNF(&ast.BinaryExpr{Op: ast.RecordMergeAllOp, L: l, R: r}).(*ast.RecordLit)
	nested := got.Fields["a"].(*ast.RecordLit)
	assert.Equal(t, ast.NewNatural(1), nested.Fields["x"])
	assert.Equal(t, ast.NewNatural(2), nested.Fields["y"])
	assert.Equal(t, ast.NewNatural(3), got.Fields["b"])
}

func TestWHNFRecordMergeAllRightBiasedOnNonRecordOverlap(t *testing.T) {
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(1)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(2)}}
	got := WHNF(&ast.BinaryExpr{Op: ast.RecordMergeAllOp, L: l, R: r}).(*ast.RecordLit)
	assert.Equal(t, ast.NewNatural(2), got.Fields["x"])
}

func TestWHNFRecordTypeMergeAllRecursesIntoNestedRecordTypes(t *testing.T) {
	l := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"a": &ast.RecordType{Fields: map[ast.Label]ast.Expr{"x": ast.NewBuiltin(ast.NaturalType)}},
	}}
	r := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"a": &ast.RecordType{Fields: map[ast.Label]ast.Expr{"y": ast.NewBuiltin(ast.BoolType)}},
	}}
	got := WHNF(&ast.BinaryExpr{Op: ast.RecordTypeMergeOp, L: l, R: r}).(*ast.RecordType)
	nested := got.Fields["a"].(*ast.RecordType)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), nested.Fields["x"])
	assert.Equal(t, ast.NewBuiltin(ast.BoolType), nested.Fields["y"])
}

func TestWHNFEquivalentOpStaysLazy(t *testing.T) {
	e := &ast.BinaryExpr{Op: ast.EquivalentOp, L: ast.NewNatural(1), R: ast.NewNatural(1)}
	assert.Equal(t, e, WHNF(e))
}

func TestWHNFMergeSelectsMatchingHandler(t *testing.T) {
	handlers := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"Left":  &ast.Lam{Label: "n", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("n", 0)},
		"Right": &ast.Lam{Label: "b", Type: ast.NewBuiltin(ast.BoolType), Body: ast.NewNatural(0)},
	}}
	union := &ast.UnionLit{Label: "Left", Value: ast.NewNatural(9), Alternatives: map[ast.Label]ast.Expr{"Right": ast.NewBuiltin(ast.BoolType)}}
	got := WHNF(&ast.Merge{Handlers: handlers, Union: union})
	assert.Equal(t, ast.NewNatural(9), got)
}

func TestWHNFToMapSortsByKey(t *testing.T) {
	rec := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"b": ast.NewNatural(2),
		"a": ast.NewNatural(1),
	}}
	got := WHNF(&ast.ToMap{Record: rec}).(*ast.NEList)
	require.Len(t, got.Elems, 2)
	first := got.Elems[0].(*ast.RecordLit)
	second := got.Elems[1].(*ast.RecordLit)
	assert.Equal(t, ast.NewText("a"), first.Fields["mapKey"])
	assert.Equal(t, ast.NewText("b"), second.Fields["mapKey"])
}

func TestWHNFToMapEmptyRecordNeedsAnnotation(t *testing.T) {
	listTy := &ast.App{Fn: ast.NewBuiltin(ast.ListType), Arg: ast.NewBuiltin(ast.NaturalType)}
	rec := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{}}
	got := WHNF(&ast.ToMap{Record: rec, Type: listTy})
	empty, ok := got.(*ast.EmptyList)
	require.True(t, ok)
	assert.Equal(t, listTy, empty.Type)
}
