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

import "github.com/dhall-lang/dhall-go/ast"

func typeConst() ast.Expr { return ast.NewConst(ast.Type) }

func listOf(a ast.Expr) ast.Expr { return &ast.App{Fn: ast.NewBuiltin(ast.ListType), Arg: a} }

func optionalOf(a ast.Expr) ast.Expr { return &ast.App{Fn: ast.NewBuiltin(ast.OptionalType), Arg: a} }

func pi(label ast.Label, domain, codomain ast.Expr) *ast.Pi {
	return &ast.Pi{Label: label, Domain: domain, Codomain: codomain}
}

func fn(domain, codomain ast.Expr) *ast.Pi { return pi("_", domain, codomain) }

// builtinType returns the fixed Pi type of a builtin reference, grounded
// on the closed type signatures Dhall's standard assigns each one. Every
// binder introduced below uses a name found nowhere else in the same
// signature, so every bound-variable reference inside is simply index 0.
func builtinType(id ast.BuiltinID) ast.Expr {
	v := func(name ast.Label) *ast.Var { return ast.NewVar(name, 0) }

	switch id {
	case ast.BoolType, ast.NaturalType, ast.IntegerType, ast.DoubleType, ast.TextType:
		return typeConst()

	case ast.ListType, ast.OptionalType:
		return fn(typeConst(), typeConst())

	case ast.OptionalNone:
		return pi("A", typeConst(), optionalOf(v("A")))

	case ast.NaturalBuild:
		return fn(
			pi("natural", typeConst(),
				pi("succ", fn(v("natural"), v("natural")),
					pi("zero", v("natural"), v("natural")))),
			ast.NewBuiltin(ast.NaturalType))

	case ast.NaturalFold:
		return fn(ast.NewBuiltin(ast.NaturalType),
			pi("natural", typeConst(),
				pi("succ", fn(v("natural"), v("natural")),
					pi("zero", v("natural"), v("natural")))))

	case ast.NaturalIsZero, ast.NaturalEven, ast.NaturalOdd:
		return fn(ast.NewBuiltin(ast.NaturalType), ast.NewBuiltin(ast.BoolType))

	case ast.NaturalToInteger:
		return fn(ast.NewBuiltin(ast.NaturalType), ast.NewBuiltin(ast.IntegerType))

	case ast.NaturalShow:
		return fn(ast.NewBuiltin(ast.NaturalType), ast.NewBuiltin(ast.TextType))

	case ast.NaturalSubtract:
		return fn(ast.NewBuiltin(ast.NaturalType), fn(ast.NewBuiltin(ast.NaturalType), ast.NewBuiltin(ast.NaturalType)))

	case ast.IntegerToDouble:
		return fn(ast.NewBuiltin(ast.IntegerType), ast.NewBuiltin(ast.DoubleType))

	case ast.IntegerShow:
		return fn(ast.NewBuiltin(ast.IntegerType), ast.NewBuiltin(ast.TextType))

	case ast.IntegerNegate:
		return fn(ast.NewBuiltin(ast.IntegerType), ast.NewBuiltin(ast.IntegerType))

	case ast.IntegerClamp:
		return fn(ast.NewBuiltin(ast.IntegerType), ast.NewBuiltin(ast.NaturalType))

	case ast.DoubleShow:
		return fn(ast.NewBuiltin(ast.DoubleType), ast.NewBuiltin(ast.TextType))

	case ast.TextShow:
		return fn(ast.NewBuiltin(ast.TextType), ast.NewBuiltin(ast.TextType))

	case ast.ListBuild:
		return pi("a", typeConst(),
			fn(pi("list", typeConst(),
				pi("cons", fn(v("a"), fn(v("list"), v("list"))),
					pi("nil", v("list"), v("list")))),
				listOf(v("a"))))

	case ast.ListFold:
		return pi("a", typeConst(),
			fn(listOf(v("a")),
				pi("list", typeConst(),
					pi("cons", fn(v("a"), fn(v("list"), v("list"))),
						pi("nil", v("list"), v("list"))))))

	case ast.ListLength:
		return pi("a", typeConst(), fn(listOf(v("a")), ast.NewBuiltin(ast.NaturalType)))

	case ast.ListHead, ast.ListLast:
		return pi("a", typeConst(), fn(listOf(v("a")), optionalOf(v("a"))))

	case ast.ListIndexed:
		entry := &ast.RecordType{Fields: map[ast.Label]ast.Expr{
			"index": ast.NewBuiltin(ast.NaturalType),
			"value": v("a"),
		}}
		return pi("a", typeConst(), fn(listOf(v("a")), listOf(entry)))

	case ast.ListReverse:
		return pi("a", typeConst(), fn(listOf(v("a")), listOf(v("a"))))

	case ast.OptionalBuild:
		return pi("a", typeConst(),
			fn(pi("optional", typeConst(),
				pi("some", fn(v("a"), v("optional")),
					pi("none", v("optional"), v("optional")))),
				optionalOf(v("a"))))

	case ast.OptionalFold:
		return pi("a", typeConst(),
			fn(optionalOf(v("a")),
				pi("optional", typeConst(),
					pi("some", fn(v("a"), v("optional")),
						fn(v("optional"), v("optional"))))))
	}
	panic("typecheck: unhandled builtin")
}
