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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapChildrenRebuildsLam(t *testing.T) {
	e := &Lam{Label: "x", Type: NewBuiltin(NaturalType), Body: NewVar("x", 0)}
	doubled := MapChildren(e, func(c Expr) Expr {
		if v, ok := c.(*Var); ok {
			return NewVar(v.Name, v.Index+1)
		}
		return c
	}).(*Lam)
	assert.Equal(t, NewVar("x", 1), doubled.Body)
	assert.Equal(t, NewBuiltin(NaturalType), doubled.Type)
}

func TestMapChildrenLeavesLeavesAlone(t *testing.T) {
	e := NewNatural(5)
	got := MapChildren(e, func(c Expr) Expr { t.Fatal("f should not be called on a leaf's children"); return c })
	assert.Equal(t, e, got)
}

func TestMapChildrenPreservesUnionTypeNilAlternative(t *testing.T) {
	ut := &UnionType{Alternatives: map[Label]Expr{"Left": NewBuiltin(NaturalType), "Right": nil}}
	got := MapChildren(ut, func(c Expr) Expr { return c }).(*UnionType)
	assert.Nil(t, got.Alternatives["Right"])
	assert.Contains(t, got.Alternatives, "Right")
}

func TestTraverseChildrenVisitsInOrderAndStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	e := &App{Fn: NewVar("f", 0), Arg: NewVar("x", 0)}
	var visited []Expr
	err := TraverseChildren(e, func(c Expr) error {
		visited = append(visited, c)
		if len(visited) == 1 {
			return boom
		}
		return nil
	})
	require.Equal(t, boom, err)
	assert.Len(t, visited, 1, "traversal must stop after the first error")
}

func TestContainsImportFindsNestedImport(t *testing.T) {
	e := &App{Fn: NewVar("f", 0), Arg: &Import{}}
	assert.True(t, ContainsImport(e))
}

func TestContainsImportFalseWhenFullyResolved(t *testing.T) {
	e := &Lam{Label: "x", Type: NewBuiltin(NaturalType), Body: NewVar("x", 0)}
	assert.False(t, ContainsImport(e))
}
