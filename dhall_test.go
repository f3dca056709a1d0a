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

package dhall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-lang/dhall-go/ast"
)

func TestIdentityLambdaInfersPiType(t *testing.T) {
	// λ(x : Natural) → x ⇒ ∀(x : Natural) → Natural
	e := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("x", 0)}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	want := &ast.Pi{Label: "x", Domain: ast.NewBuiltin(ast.NaturalType), Codomain: ast.NewBuiltin(ast.NaturalType)}
	assert.Equal(t, want, tv.Type)
}

func TestBetaReducedApplicationTypeAndValue(t *testing.T) {
	// (λ(x : Natural) → x) 3 ⇒ Natural, normalizes to 3
	id := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("x", 0)}
	e := &ast.App{Fn: id, Arg: ast.NewNatural(3)}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), tv.Type)
	assert.Equal(t, ast.NewNatural(3), Normalize(tv))
}

func TestRecordLiteralInfersFieldwiseType(t *testing.T) {
	// { x = 1, y = True } ⇒ { x : Natural, y : Bool }
	e := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"x": ast.NewNatural(1),
		"y": &ast.BoolLit{Val: true},
	}}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	want := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"x": ast.NewBuiltin(ast.NaturalType),
		"y": ast.NewBuiltin(ast.BoolType),
	}}
	assert.Equal(t, want, tv.Type)
}

func TestRightBiasedRecordMergeTypeAndValue(t *testing.T) {
	// { x = 1 } ⫽ { x = 2, y = 3 } ⇒ { x : Natural, y : Natural },
	// normalizes to { x = 2, y = 3 }
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(1)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(2), "y": ast.NewNatural(3)}}
	e := &ast.BinaryExpr{Op: ast.RecordMergeOp, L: l, R: r}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	wantTy := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"x": ast.NewBuiltin(ast.NaturalType),
		"y": ast.NewBuiltin(ast.NaturalType),
	}}
	assert.Equal(t, wantTy, tv.Type)
	wantVal := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(2), "y": ast.NewNatural(3)}}
	assert.Equal(t, wantVal, Normalize(tv))
}

func TestMergeOverUnionConstructorTypeAndValue(t *testing.T) {
	// merge { Left = λ(n : Natural) → n, Right = λ(b : Bool) → if b then 1 else 0 }
	//       (< Left : Natural | Right : Bool >.Left 7) ⇒ Natural, normalizes to 7
	ut := &ast.UnionType{Alternatives: map[ast.Label]ast.Expr{
		"Left":  ast.NewBuiltin(ast.NaturalType),
		"Right": ast.NewBuiltin(ast.BoolType),
	}}
	scrutinee := &ast.App{Fn: &ast.Field{Record: ut, Label: "Left"}, Arg: ast.NewNatural(7)}
	handlers := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"Left": &ast.Lam{Label: "n", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("n", 0)},
		"Right": &ast.Lam{Label: "b", Type: ast.NewBuiltin(ast.BoolType), Body: &ast.BoolIf{
			Cond: ast.NewVar("b", 0), Then: ast.NewNatural(1), Else: ast.NewNatural(0),
		}},
	}}
	e := &ast.Merge{Handlers: handlers, Union: scrutinee}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), tv.Type)
	assert.Equal(t, ast.NewNatural(7), Normalize(tv))
}

func TestListHeadOfEmptyListTypeAndValue(t *testing.T) {
	// List/head Natural ([] : List Natural) ⇒ Optional Natural,
	// normalizes to None Natural
	listNat := &ast.App{Fn: ast.NewBuiltin(ast.ListType), Arg: ast.NewBuiltin(ast.NaturalType)}
	e := &ast.App{
		Fn:  &ast.App{Fn: ast.NewBuiltin(ast.ListHead), Arg: ast.NewBuiltin(ast.NaturalType)},
		Arg: &ast.EmptyList{Type: listNat},
	}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	wantTy := &ast.App{Fn: ast.NewBuiltin(ast.OptionalType), Arg: ast.NewBuiltin(ast.NaturalType)}
	assert.Equal(t, wantTy, tv.Type)

	got := Normalize(tv)
	app, ok := got.(*ast.App)
	require.True(t, ok)
	b, ok := app.Fn.(*ast.Builtin)
	require.True(t, ok)
	assert.Equal(t, ast.OptionalNone, b.ID)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), app.Arg)
}

func TestNaturalPlusBoolRejected(t *testing.T) {
	// 1 + True fails with BinOpTypeMismatch
	e := &ast.BinaryExpr{Op: ast.PlusOp, L: ast.NewNatural(1), R: &ast.BoolLit{Val: true}}
	_, err := TypeCheck(e)
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, ErrBinOpTypeMismatch, te.Code)
}

func TestUnboundVariableInLambdaBodyRejected(t *testing.T) {
	// λ(x : Natural) → y fails with UnboundVariable
	e := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("y", 0)}
	_, err := TypeCheck(e)
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, ErrUnboundVariable, te.Code)
}

func TestTypeCheckAgainstAcceptsMatchingAnnotation(t *testing.T) {
	tv, err := TypeCheckAgainst(ast.NewNatural(1), ast.NewBuiltin(ast.NaturalType))
	require.NoError(t, err)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), tv.Type)
}

func TestTypeCheckAgainstRejectsMismatchedAnnotation(t *testing.T) {
	_, err := TypeCheckAgainst(ast.NewNatural(1), ast.NewBuiltin(ast.BoolType))
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, ErrAnnotMismatch, te.Code)
}

func TestTypeErrorUnwrapsToUnderlyingError(t *testing.T) {
	_, err := TypeCheck(ast.NewVar("z", 0))
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.NotNil(t, te.Unwrap())
	assert.Contains(t, te.Error(), "z")
}
