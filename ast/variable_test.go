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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftZeroIsIdentity(t *testing.T) {
	e := &Lam{
		Label: "x",
		Type:  NewBuiltin(NaturalType),
		Body:  &App{Fn: NewVar("f", 0), Arg: NewVar("x", 0)},
	}
	got := Shift(0, Var{Name: "x", Index: 0}, e)
	assert.Equal(t, e, got)
}

func TestShiftComposesWhenSignsAgree(t *testing.T) {
	e := &App{Fn: NewVar("x", 0), Arg: NewVar("x", 2)}
	v := Var{Name: "x", Index: 1}

	once := Shift(3, v, e)
	twoSteps := Shift(2, v, Shift(1, v, e))
	assert.Equal(t, once, twoSteps)
}

func TestShiftLeavesUnrelatedNamesAlone(t *testing.T) {
	e := NewVar("y", 0)
	got := Shift(5, Var{Name: "x", Index: 0}, e)
	assert.Equal(t, e, got)
}

func TestShiftDescendsWithIncrementedThresholdUnderSameNameBinder(t *testing.T) {
	// \(x : Natural) -> x@1 refers to an outer x; shifting the outer x by
	// 1 must still reach it (threshold becomes 1 under the binder).
	e := &Lam{Label: "x", Type: NewBuiltin(NaturalType), Body: NewVar("x", 1)}
	got := Shift(1, Var{Name: "x", Index: 0}, e).(*Lam)
	assert.Equal(t, &Var{Name: "x", Index: 2}, got.Body)
}

func TestShiftDoesNotTouchBoundOccurrenceOfNewBinder(t *testing.T) {
	// \(x : Natural) -> x@0 is the binder's own variable; shifting the
	// *outer* x@0 must not affect it, since under the binder the relevant
	// threshold is 1, not 0.
	e := &Lam{Label: "x", Type: NewBuiltin(NaturalType), Body: NewVar("x", 0)}
	got := Shift(1, Var{Name: "x", Index: 0}, e).(*Lam)
	assert.Equal(t, &Var{Name: "x", Index: 0}, got.Body)
}

func TestSubstReplacesExactMatch(t *testing.T) {
	target := Var{Name: "x", Index: 0}
	replacement := NewNatural(42)
	got := Subst(target, replacement, NewVar("x", 0))
	assert.Equal(t, replacement, got)
}

func TestSubstDecrementsDeeperSameNameReferences(t *testing.T) {
	// Eliminating x@0 must pull any x@1 (etc.) down by one, since the
	// binder they skipped past no longer exists in the result.
	got := Subst(Var{Name: "x", Index: 0}, NewNatural(1), NewVar("x", 1))
	assert.Equal(t, &Var{Name: "x", Index: 0}, got)
}

func TestSubstShiftsValueOverUnrelatedBinder(t *testing.T) {
	// Substituting a value containing free y@0 under a \(y:...) binder
	// must shift the value so its y@0 still refers to the outer y.
	value := NewVar("y", 0)
	body := &Lam{Label: "y", Type: NewBuiltin(NaturalType), Body: NewVar("x", 0)}
	got := Subst(Var{Name: "x", Index: 0}, value, body).(*Lam)
	assert.Equal(t, &Var{Name: "y", Index: 1}, got.Body)
}

func TestSubstUnderSameNameBinderIncrementsIndex(t *testing.T) {
	// Substituting for x@0 must not touch the binder's own x@0 occurrences
	// inside a nested \(x:...) body; relative to that body the target
	// becomes x@1.
	body := &Lam{Label: "x", Type: NewBuiltin(NaturalType), Body: NewVar("x", 0)}
	got := Subst(Var{Name: "x", Index: 0}, NewNatural(9), body).(*Lam)
	assert.Equal(t, &Var{Name: "x", Index: 0}, got.Body, "inner binder's own variable is untouched")
}

func TestVarEqual(t *testing.T) {
	assert.True(t, (Var{Name: "x", Index: 1}).Equal(Var{Name: "x", Index: 1}))
	assert.False(t, (Var{Name: "x", Index: 1}).Equal(Var{Name: "x", Index: 2}))
	assert.False(t, (Var{Name: "x", Index: 0}).Equal(Var{Name: "y", Index: 0}))
}
