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

// BuiltinID identifies one of Dhall's closed set of built-in names: the
// basic types (Bool, Natural, ...) as well as the polymorphic functions
// attached to them (Natural/fold, List/build, ...).
type BuiltinID int

const (
	BoolType BuiltinID = iota
	NaturalType
	IntegerType
	DoubleType
	TextType
	ListType
	OptionalType

	NaturalBuild
	NaturalFold
	NaturalIsZero
	NaturalEven
	NaturalOdd
	NaturalToInteger
	NaturalShow
	NaturalSubtract

	IntegerToDouble
	IntegerShow
	IntegerNegate
	IntegerClamp

	DoubleShow

	TextShow

	ListBuild
	ListFold
	ListLength
	ListHead
	ListLast
	ListIndexed
	ListReverse

	OptionalBuild
	OptionalFold
	OptionalNone
)

var builtinNames = map[BuiltinID]string{
	BoolType:     "Bool",
	NaturalType:  "Natural",
	IntegerType:  "Integer",
	DoubleType:   "Double",
	TextType:     "Text",
	ListType:     "List",
	OptionalType: "Optional",

	NaturalBuild:     "Natural/build",
	NaturalFold:      "Natural/fold",
	NaturalIsZero:    "Natural/isZero",
	NaturalEven:      "Natural/even",
	NaturalOdd:       "Natural/odd",
	NaturalToInteger: "Natural/toInteger",
	NaturalShow:      "Natural/show",
	NaturalSubtract:  "Natural/subtract",

	IntegerToDouble: "Integer/toDouble",
	IntegerShow:     "Integer/show",
	IntegerNegate:   "Integer/negate",
	IntegerClamp:    "Integer/clamp",

	DoubleShow: "Double/show",

	TextShow: "Text/show",

	ListBuild:   "List/build",
	ListFold:    "List/fold",
	ListLength:  "List/length",
	ListHead:    "List/head",
	ListLast:    "List/last",
	ListIndexed: "List/indexed",
	ListReverse: "List/reverse",

	OptionalBuild: "Optional/build",
	OptionalFold:  "Optional/fold",
	OptionalNone:  "None",
}

var builtinsByName map[string]BuiltinID

func init() {
	builtinsByName = make(map[string]BuiltinID, len(builtinNames))
	for id, name := range builtinNames {
		builtinsByName[name] = id
	}
}

// String returns the canonical Dhall source name for b.
func (b BuiltinID) String() string {
	if name, ok := builtinNames[b]; ok {
		return name
	}
	return "<invalid builtin>"
}

// LookupBuiltin returns the BuiltinID for a Dhall source name, such as
// "Natural/fold" or "List", and reports whether one exists.
func LookupBuiltin(name string) (BuiltinID, bool) {
	id, ok := builtinsByName[name]
	return id, ok
}

// Builtin is a reference to one of the closed set of built-in names.
type Builtin struct {
	ID BuiltinID
}

func (*Builtin) node()     {}
func (*Builtin) exprNode() {}

// NewBuiltin returns a reference to the given builtin.
func NewBuiltin(id BuiltinID) *Builtin { return &Builtin{ID: id} }
