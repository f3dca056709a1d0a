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

// Package tyctx is the persistent typing context threaded through
// internal/typecheck: an immutable stack of (name, type) bindings that
// the checker extends by one frame per binder it descends into.
package tyctx

import "github.com/dhall-lang/dhall-go/ast"

// Context is a persistent stack of type bindings, innermost first. The
// zero value is the empty context.
type Context struct {
	label ast.Label
	typ   ast.Expr
	up    *Context
}

// Insert returns a new context that extends c with a binder named label
// of type typ, as in "Γ, label : typ".
//
// Every type already in c is first shifted by one for free occurrences of
// label: those occurrences were resolved against a context that did not
// yet have this binder, so without the shift they would silently start
// referring to it instead of the (shadowed) binding they meant. This
// mirrors the shift ast.Subst performs when it pushes a substituted value
// under a new binder of the same name — inserting into the context is
// the same "push under a binder" operation, just applied to every stored
// type at once rather than to a single substituted expression.
func (c *Context) Insert(label ast.Label, typ ast.Expr) *Context {
	return &Context{label: label, typ: typ, up: shiftAll(c, label)}
}

func shiftAll(c *Context, label ast.Label) *Context {
	if c == nil {
		return nil
	}
	return &Context{
		label: c.label,
		typ:   ast.Shift(1, ast.Var{Name: label, Index: 0}, c.typ),
		up:    shiftAll(c.up, label),
	}
}

// Lookup returns the type of the index-th (innermost-first) binder named
// label.
func (c *Context) Lookup(label ast.Label, index int) (ast.Expr, bool) {
	for cur := c; cur != nil; cur = cur.up {
		if cur.label == label {
			if index == 0 {
				return cur.typ, true
			}
			index--
		}
	}
	return nil, false
}
