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

// Package errs is the ambient error type that the type-checker wraps in
// its structured errors. It deliberately carries no source position: the parser and
// the import resolver, which could attach one, are external collaborators
// that this repository does not implement.
package errs

import "fmt"

// Error is the plain formatted error that typecheck.Error carries as its
// cause. Msg exposes the raw format string and arguments so that callers
// building structured diagnostics (see typecheck.Error) don't have to
// re-parse Error().
type Error interface {
	error
	Msg() (format string, args []interface{})
}

type simple struct {
	format string
	args   []interface{}
}

func (e *simple) Error() string {
	return fmt.Sprintf(e.format, e.args...)
}

func (e *simple) Msg() (string, []interface{}) {
	return e.format, e.args
}

// Newf returns an Error formatted with fmt.Sprintf semantics.
func Newf(format string, args ...interface{}) Error {
	return &simple{format: format, args: args}
}

type wrapped struct {
	msg   string
	cause Error
}

func (e *wrapped) Error() string {
	return e.msg + ": " + e.cause.Error()
}

func (e *wrapped) Msg() (string, []interface{}) {
	return e.msg, nil
}

func (e *wrapped) Unwrap() error {
	return e.cause
}

// Wrapf annotates cause with an additional message, preserving it for
// errors.Unwrap.
func Wrapf(cause Error, format string, args ...interface{}) Error {
	return &wrapped{msg: fmt.Sprintf(format, args...), cause: cause}
}

// List is a non-empty sequence of errors reported together.
type List []Error

func (l List) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	s := ""
	for i, e := range l {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

func (l List) Msg() (string, []interface{}) {
	if len(l) == 0 {
		return "", nil
	}
	return l[0].Msg()
}

// Append combines a and b into a List, flattening any operand that is
// already one. Either may be nil.
func Append(a, b Error) Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	var out List
	if la, ok := a.(List); ok {
		out = append(out, la...)
	} else {
		out = append(out, a)
	}
	if lb, ok := b.(List); ok {
		out = append(out, lb...)
	} else {
		out = append(out, b)
	}
	return out
}
