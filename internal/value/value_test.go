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

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhall-lang/dhall-go/ast"
)

func TestNew(t *testing.T) {
	ty := ConstOf(ast.Kind)
	tv := New(ast.NewBuiltin(ast.NaturalType), ty)
	assert.Equal(t, ast.NewBuiltin(ast.NaturalType), tv.Value)
	assert.Same(t, ty, tv.Type)
}

func TestConstOfLeavesTypeNil(t *testing.T) {
	typeTV := ConstOf(ast.Type)
	assert.Equal(t, ast.NewConst(ast.Type), typeTV.Value)
	assert.Nil(t, typeTV.Type)

	sortTV := ConstOf(ast.Sort)
	assert.Nil(t, sortTV.Type, "Sort bottoms out the type chain with a nil Type")
}
