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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-lang/dhall-go/ast"
)

func mustErr(t *testing.T, e ast.Expr) *Error {
	t.Helper()
	_, err := TypeCheck(e)
	require.Error(t, err)
	te, ok := err.(*Error)
	require.True(t, ok, "error must be *typecheck.Error, got %T", err)
	return te
}

func TestSortHasNoType(t *testing.T) {
	te := mustErr(t, ast.NewConst(ast.Sort))
	assert.Equal(t, SortHasNoType, te.Code)
}

func TestUniverseStratification(t *testing.T) {
	typeTV, err := TypeCheck(ast.NewConst(ast.Type))
	require.NoError(t, err)
	assert.Equal(t, ast.NewConst(ast.Kind), typeTV.Type.Value)

	kindTV, err := TypeCheck(ast.NewConst(ast.Kind))
	require.NoError(t, err)
	assert.Equal(t, ast.NewConst(ast.Sort), kindTV.Type.Value)
}

func TestUnboundVariable(t *testing.T) {
	// \(x : Natural) -> y
	e := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("y", 0)}
	te := mustErr(t, e)
	assert.Equal(t, UnboundVariable, te.Code)
}

func TestLambdaInfersPiType(t *testing.T) {
	// \(x : Natural) -> x : Natural -> Natural
	e := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("x", 0)}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	want := &ast.Pi{Label: "x", Domain: ast.NewBuiltin(ast.NaturalType), Codomain: ast.NewBuiltin(ast.NaturalType)}
	assert.Equal(t, want, tv.Type.Value)
}

func TestApplicationTypeMismatch(t *testing.T) {
	// (\(x : Natural) -> x) True
	id := &ast.Lam{Label: "x", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("x", 0)}
	e := &ast.App{Fn: id, Arg: &ast.BoolLit{Val: true}}
	te := mustErr(t, e)
	assert.Equal(t, TypeMismatch, te.Code)
}

func TestApplyingNonFunction(t *testing.T) {
	e := &ast.App{Fn: ast.NewNatural(1), Arg: ast.NewNatural(2)}
	te := mustErr(t, e)
	assert.Equal(t, NotAFunction, te.Code)
}

func TestRecordLiteralType(t *testing.T) {
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
	assert.Equal(t, want, tv.Type.Value)
}

func TestBinOpTypeMismatch(t *testing.T) {
	// 1 + True
	e := &ast.BinaryExpr{Op: ast.PlusOp, L: ast.NewNatural(1), R: &ast.BoolLit{Val: true}}
	te := mustErr(t, e)
	assert.Equal(t, BinOpTypeMismatch, te.Code)
}

func TestRecordMergeOpOverridesRightBiased(t *testing.T) {
	// { x = 1 } ⫽ { x = 2, y = 3 }
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(1)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(2), "y": ast.NewNatural(3)}}
	e := &ast.BinaryExpr{Op: ast.RecordMergeOp, L: l, R: r}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	want := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"x": ast.NewBuiltin(ast.NaturalType),
		"y": ast.NewBuiltin(ast.NaturalType),
	}}
	assert.Equal(t, want, tv.Type.Value)
}

func TestFieldCollisionOnRecursiveMerge(t *testing.T) {
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewNatural(1)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": &ast.BoolLit{Val: true}}}
	e := &ast.BinaryExpr{Op: ast.RecordMergeAllOp, L: l, R: r}
	te := mustErr(t, e)
	assert.Equal(t, FieldCollision, te.Code)
}

func unionOf(alts map[ast.Label]ast.Expr) *ast.UnionType {
	return &ast.UnionType{Alternatives: alts}
}

func TestMergeTypesToHandlerResult(t *testing.T) {
	// merge { Left = \(n : Natural) -> n, Right = \(b : Bool) -> if b then 1 else 0 }
	//       (< Left : Natural | Right : Bool >.Left 7)
	ut := unionOf(map[ast.Label]ast.Expr{
		"Left":  ast.NewBuiltin(ast.NaturalType),
		"Right": ast.NewBuiltin(ast.BoolType),
	})
	leftCtor := &ast.Field{Record: ut, Label: "Left"}
	scrutinee := &ast.App{Fn: leftCtor, Arg: ast.NewNatural(7)}

	handlers := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"Left": &ast.Lam{Label: "n", Type: ast.NewBuiltin(ast.NaturalType), Body: ast.NewVar("n", 0)},
		"Right": &ast.Lam{Label: "b", Type: ast.NewBuiltin(ast.BoolType), Body: &ast.BoolIf{
			Cond: ast.NewVar("b", 0), Then: ast.NewNatural(1), Else: ast.NewNatural(0),
		}},
	}}
	e := &ast.Merge{Handlers: handlers, Union: scrutinee}
	tv, err := TypeCheck(e)
	require.NoError(t, err)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), tv.Type.Value)
}

func TestMergeHandlerReturnTypeMustNotDependOnArgument(t *testing.T) {
	// Union alternative "Left" carries a Type-level payload, and the
	// handler \(n : Type) -> \(y : n) -> y has inferred type
	// ∀(n : Type) → ∀(y : n) → n, whose codomain literally mentions the
	// handler's own bound variable.
	ut := unionOf(map[ast.Label]ast.Expr{"Left": ast.NewConst(ast.Type)})
	dependent := &ast.Lam{
		Label: "n",
		Type:  ast.NewConst(ast.Type),
		Body:  &ast.Lam{Label: "y", Type: ast.NewVar("n", 0), Body: ast.NewVar("y", 0)},
	}
	handlers := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"Left": dependent}}
	e := &ast.Merge{
		Handlers: handlers,
		Union:    &ast.App{Fn: &ast.Field{Record: ut, Label: "Left"}, Arg: ast.NewBuiltin(ast.NaturalType)},
	}
	te := mustErr(t, e)
	assert.Equal(t, MergeHandlerReturnTypeMustNotBeDependent, te.Code)
}

func TestNonDependentDetectsFreeOccurrence(t *testing.T) {
	// codomain = n@0 (directly the bound variable) is dependent.
	_, ok := nonDependent("n", ast.NewVar("n", 0))
	assert.False(t, ok)
}

func TestNonDependentAcceptsIndependentCodomain(t *testing.T) {
	// codomain = Natural, unrelated to the bound variable n.
	got, ok := nonDependent("n", ast.NewBuiltin(ast.NaturalType))
	require.True(t, ok)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), got)
}

func TestAnnotMismatch(t *testing.T) {
	e := &ast.Annot{Value: ast.NewNatural(1), Type: ast.NewBuiltin(ast.BoolType)}
	te := mustErr(t, e)
	assert.Equal(t, AnnotMismatch, te.Code)
}

func TestEmptyUnionTypeIsType(t *testing.T) {
	tv, err := TypeCheck(&ast.UnionType{Alternatives: map[ast.Label]ast.Expr{}})
	require.NoError(t, err)
	assert.Equal(t, ast.NewConst(ast.Type), tv.Type.Value)
}

func TestTextLitInterpolationMustBeText(t *testing.T) {
	lit := &ast.TextLit{Chunks: []ast.TextChunk{{Prefix: "n = ", Expr: ast.NewNatural(1)}}, Suffix: ""}
	te := mustErr(t, lit)
	assert.Equal(t, BinOpTypeMismatch, te.Code)
}

func TestRecordTypeMixedKinds(t *testing.T) {
	// { a : Type, b : Kind } must be rejected, not widened to Kind.
	e := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
		"a": ast.NewConst(ast.Type),
		"b": ast.NewConst(ast.Kind),
	}}
	te := mustErr(t, e)
	assert.Equal(t, InvalidFieldType, te.Code)
}

func TestUnionTypeMixedKinds(t *testing.T) {
	// < A : Type | B : Kind > must be rejected, not widened to Kind.
	e := unionOf(map[ast.Label]ast.Expr{
		"A": ast.NewConst(ast.Type),
		"B": ast.NewConst(ast.Kind),
	})
	te := mustErr(t, e)
	assert.Equal(t, InvalidFieldType, te.Code)
}

func TestRecordMixedKinds(t *testing.T) {
	// { a = Natural, b = Type } has fields whose *types* are Type and Kind
	// respectively, so it must be rejected the same way the RecordType
	// case is.
	e := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
		"a": ast.NewBuiltin(ast.NaturalType),
		"b": ast.NewConst(ast.Type),
	}}
	te := mustErr(t, e)
	assert.Equal(t, InvalidFieldType, te.Code)
}

func TestRightBiasedRecordMergeMixedKinds(t *testing.T) {
	// { x = Text } // { y = 1 } combines a record of types (kind Kind)
	// with a record of terms (kind Type); the operands' own kinds must
	// match even though each side is internally kind-consistent.
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewBuiltin(ast.TextType)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"y": ast.NewNatural(1)}}
	e := &ast.BinaryExpr{Op: ast.RecordMergeOp, L: l, R: r}
	te := mustErr(t, e)
	assert.Equal(t, RecordMismatch, te.Code)
}

func TestRecursiveRecordMergeMixedKinds(t *testing.T) {
	// Same operands as above but combined with ∧ instead of ⫽.
	l := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"x": ast.NewBuiltin(ast.TextType)}}
	r := &ast.RecordLit{Fields: map[ast.Label]ast.Expr{"y": ast.NewNatural(1)}}
	e := &ast.BinaryExpr{Op: ast.RecordMergeAllOp, L: l, R: r}
	te := mustErr(t, e)
	assert.Equal(t, RecordMismatch, te.Code)
}

func TestRecordTypeMergeMixedKinds(t *testing.T) {
	// { x : Text } ⩓ { y : Type } combines a record type of kind Type
	// with one of kind Kind.
	l := &ast.RecordType{Fields: map[ast.Label]ast.Expr{"x": ast.NewBuiltin(ast.TextType)}}
	r := &ast.RecordType{Fields: map[ast.Label]ast.Expr{"y": ast.NewConst(ast.Type)}}
	e := &ast.BinaryExpr{Op: ast.RecordTypeMergeOp, L: l, R: r}
	te := mustErr(t, e)
	assert.Equal(t, RecordTypeMismatch, te.Code)
}
