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

// Package ast defines the resolved Dhall expression tree.
//
// Terms, types, kinds and sorts all live in this single syntactic category,
// exactly as the Dhall standard requires. A tree produced by this package is
// assumed to already be free of Import nodes and ImportAlt operators: import
// resolution is an external collaborator and is never performed here.
package ast

// A Label is a non-empty string of source identifier characters. Dhall
// records and unions key their fields by Label.
type Label = string

// Node is implemented by every node in the expression tree.
type Node interface {
	// node is unexported so only types in this package can be Nodes.
	node()
}

// Expr is a Dhall term, type, kind, or sort. All of Dhall's syntax lives in
// this single category; there is no separate "type expression" grammar.
//
// Records and unions are semantically unordered label->value mappings, so,
// unlike a parser's concrete syntax tree, this package represents them
// directly as Go maps rather than as ordered lists of declaration nodes.
type Expr interface {
	Node
	exprNode()
}
