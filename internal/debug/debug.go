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

// Package debug prints an ast.Expr in a compact human-readable form for use
// in diagnostics. The result is not guaranteed to reparse as Dhall source;
// it favors legibility over round-tripping.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dhall-lang/dhall-go/ast"
)

// Format renders e for inclusion in an error message.
func Format(e ast.Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e ast.Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")

	case *ast.Const:
		b.WriteString(x.Val.String())

	case *ast.Var:
		b.WriteString(x.Name)
		if x.Index != 0 {
			fmt.Fprintf(b, "@%d", x.Index)
		}

	case *ast.Builtin:
		b.WriteString(x.ID.String())

	case *ast.Lam:
		fmt.Fprintf(b, "λ(%s : %s) → ", x.Label, Format(x.Type))
		write(b, x.Body)

	case *ast.Pi:
		if x.Label == "_" {
			write(b, x.Domain)
			b.WriteString(" → ")
		} else {
			fmt.Fprintf(b, "∀(%s : %s) → ", x.Label, Format(x.Domain))
		}
		write(b, x.Codomain)

	case *ast.App:
		write(b, x.Fn)
		b.WriteString(" ")
		writeAtom(b, x.Arg)

	case *ast.Annot:
		write(b, x.Value)
		b.WriteString(" : ")
		write(b, x.Type)

	case *ast.Let:
		fmt.Fprintf(b, "let %s = %s in ", x.Label, Format(x.Value))
		write(b, x.Body)

	case *ast.BoolLit:
		fmt.Fprintf(b, "%t", x.Val)

	case *ast.NaturalLit:
		b.WriteString(x.Val.String())

	case *ast.IntegerLit:
		if !x.Val.Negative {
			b.WriteString("+")
		}
		b.WriteString(x.Val.String())

	case *ast.DoubleLit:
		fmt.Fprintf(b, "0x%xp0", x.Bits)

	case *ast.TextLit:
		b.WriteString(strconv.Quote(textLitPreview(x)))

	case *ast.EmptyList:
		fmt.Fprintf(b, "[] : %s", Format(x.Type))

	case *ast.NEList:
		b.WriteString("[")
		for i, el := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, el)
		}
		b.WriteString("]")

	case *ast.Some:
		b.WriteString("Some ")
		writeAtom(b, x.Value)

	case *ast.RecordType:
		writeFields(b, "{", "}", x.Fields, ":")

	case *ast.RecordLit:
		writeFields(b, "{", "}", x.Fields, "=")

	case *ast.UnionType:
		writeOptFields(b, "<", ">", x.Alternatives)

	case *ast.UnionLit:
		fmt.Fprintf(b, "<%s", x.Label)
		if x.Value != nil {
			b.WriteString(" = ")
			write(b, x.Value)
		}
		b.WriteString(" | ...>")

	case *ast.Field:
		write(b, x.Record)
		fmt.Fprintf(b, ".%s", x.Label)

	case *ast.Projection:
		write(b, x.Record)
		b.WriteString(".{")
		b.WriteString(strings.Join(x.Labels, ", "))
		b.WriteString("}")

	case *ast.ProjectionByType:
		write(b, x.Record)
		fmt.Fprintf(b, ".(%s)", Format(x.Type))

	case *ast.BoolIf:
		fmt.Fprintf(b, "if %s then %s else ", Format(x.Cond), Format(x.Then))
		write(b, x.Else)

	case *ast.Merge:
		fmt.Fprintf(b, "merge %s %s", Format(x.Handlers), Format(x.Union))
		if x.Type != nil {
			fmt.Fprintf(b, " : %s", Format(x.Type))
		}

	case *ast.ToMap:
		fmt.Fprintf(b, "toMap %s", Format(x.Record))
		if x.Type != nil {
			fmt.Fprintf(b, " : %s", Format(x.Type))
		}

	case *ast.Assert:
		fmt.Fprintf(b, "assert : %s", Format(x.Annotation))

	case *ast.BinaryExpr:
		fmt.Fprintf(b, "%s %s %s", Format(x.L), x.Op, Format(x.R))

	case *ast.Import:
		b.WriteString("<import>")

	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

// writeAtom parenthesizes e when write would produce an expression that
// isn't already lexically atomic, mirroring how a pretty-printer would
// avoid ambiguous application spines.
func writeAtom(b *strings.Builder, e ast.Expr) {
	switch e.(type) {
	case *ast.Var, *ast.Const, *ast.Builtin, *ast.RecordLit, *ast.RecordType,
		*ast.NEList, *ast.EmptyList, *ast.UnionType, *ast.TextLit,
		*ast.BoolLit, *ast.NaturalLit, *ast.IntegerLit, *ast.DoubleLit:
		write(b, e)
	default:
		b.WriteString("(")
		write(b, e)
		b.WriteString(")")
	}
}

func writeFields(b *strings.Builder, open, close string, fields map[ast.Label]ast.Expr, sep string) {
	b.WriteString(open)
	for i, l := range sortedLabels(fields) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s %s %s", l, sep, Format(fields[l]))
	}
	b.WriteString(close)
}

func writeOptFields(b *strings.Builder, open, close string, alts map[ast.Label]ast.Expr) {
	b.WriteString(open)
	for i, l := range sortedLabels(alts) {
		if i > 0 {
			b.WriteString(" | ")
		}
		if alts[l] == nil {
			b.WriteString(l)
		} else {
			fmt.Fprintf(b, "%s : %s", l, Format(alts[l]))
		}
	}
	b.WriteString(close)
}

func sortedLabels(m map[ast.Label]ast.Expr) []ast.Label {
	out := make([]ast.Label, 0, len(m))
	for l := range m {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func textLitPreview(x *ast.TextLit) string {
	var b strings.Builder
	for _, c := range x.Chunks {
		b.WriteString(c.Prefix)
		b.WriteString("${...}")
	}
	b.WriteString(x.Suffix)
	return b.String()
}
