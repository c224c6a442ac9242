// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strconv"

	"github.com/vmorris/rosie-pattern-language/env"
	"github.com/vmorris/rosie-pattern-language/peg"
	"github.com/vmorris/rosie-pattern-language/utf8range"
)

// RegisterBuiltins installs the compiler-provided PrimFunctions (§3, §4.2
// "application") into e's innermost frame. opts is captured by closure so
// unicode_range sees the StrictSurrogates setting the compile session was
// configured with.
func RegisterBuiltins(e *env.Environment, opts Options) {
	e.Bind("unicode_range", env.NewPrimFunctionBinding("unicode_range", "2", unicodeRangeImpl(opts)))
}

// unicodeRangeImpl wires the UTF-8 codepoint range compiler (C3) into the
// application/builtin call path: `unicode_range("0", "1114111")` compiles
// its two string-literal arguments as decimal integers and lowers the
// resulting [n,m] interval via utf8range.
func unicodeRangeImpl(opts Options) env.PrimFunctionImpl {
	return func(args []peg.Pattern) (peg.Pattern, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("unicode_range expects 2 arguments, got %d", len(args))
		}
		n, err := literalInt(args[0])
		if err != nil {
			return nil, err
		}
		m, err := literalInt(args[1])
		if err != nil {
			return nil, err
		}
		return utf8range.CompileStrict(n, m, opts.StrictSurrogates)
	}
}

func literalInt(p peg.Pattern) (int, error) {
	b, ok := peg.LiteralBytes(p)
	if !ok {
		return 0, fmt.Errorf("expected a literal integer argument")
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", string(b))
	}
	return v, nil
}
