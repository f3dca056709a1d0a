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

import "fmt"

// Universe is one of the three universe constants that stratify Dhall's
// single syntactic category: Type : Kind : Sort, with Sort itself untyped.
type Universe int

const (
	Type Universe = iota
	Kind
	Sort
)

func (u Universe) String() string {
	switch u {
	case Type:
		return "Type"
	case Kind:
		return "Kind"
	case Sort:
		return "Sort"
	default:
		return fmt.Sprintf("Universe(%d)", int(u))
	}
}

// Const is a universe literal: Type, Kind, or Sort.
type Const struct {
	Val Universe
}

func (*Const) node()     {}
func (*Const) exprNode() {}

// NewConst returns the universe literal for u.
func NewConst(u Universe) *Const { return &Const{Val: u} }
