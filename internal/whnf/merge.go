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
	"sort"

	"github.com/dhall-lang/dhall-go/ast"
)

func whnfMerge(x *ast.Merge) ast.Expr {
	handlers := WHNF(x.Handlers)
	union := WHNF(x.Union)

	if result, ok := applyMerge(handlers, union); ok {
		return WHNF(result)
	}

	var ty ast.Expr
	if x.Type != nil {
		ty = WHNF(x.Type)
	}
	return &ast.Merge{Handlers: handlers, Union: union, Type: ty}
}

func applyMerge(handlers, union ast.Expr) (ast.Expr, bool) {
	h, ok := handlers.(*ast.RecordLit)
	if !ok {
		return nil, false
	}

	switch u := union.(type) {
	case *ast.UnionLit:
		handler, ok := h.Fields[u.Label]
		if !ok {
			return nil, false
		}
		if u.Value == nil {
			return handler, true
		}
		return &ast.App{Fn: handler, Arg: u.Value}, true

	case *ast.Some:
		handler, ok := h.Fields["Some"]
		if !ok {
			return nil, false
		}
		return &ast.App{Fn: handler, Arg: u.Value}, true

	default:
		if b, ok := union.(*ast.Builtin); ok && b.ID == ast.OptionalNone {
			if handler, ok := h.Fields["None"]; ok {
				return handler, true
			}
		}
		return nil, false
	}
}

func whnfToMap(x *ast.ToMap) ast.Expr {
	r := WHNF(x.Record)
	rec, ok := r.(*ast.RecordLit)
	if !ok {
		var ty ast.Expr
		if x.Type != nil {
			ty = WHNF(x.Type)
		}
		return &ast.ToMap{Record: r, Type: ty}
	}

	if len(rec.Fields) == 0 {
		if x.Type != nil {
			return &ast.EmptyList{Type: WHNF(x.Type)}
		}
		// Unreachable for type-checked input: an untyped empty toMap
		// cannot be assigned a List element type.
		return &ast.ToMap{Record: r, Type: nil}
	}

	labels := make([]string, 0, len(rec.Fields))
	for l := range rec.Fields {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	elems := make([]ast.Expr, len(labels))
	for i, l := range labels {
		elems[i] = &ast.RecordLit{Fields: map[ast.Label]ast.Expr{
			"mapKey":   ast.NewText(l),
			"mapValue": rec.Fields[l],
		}}
	}
	return &ast.NEList{Elems: elems}
}
