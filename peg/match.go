// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

// Result is the outcome of matching a compiled Pattern against input.
type Result struct {
	Matched  bool
	N        int // bytes consumed from the start of input
	Captures []CaptureSpan
}

// Match attempts to match pat at the start of input using DefaultConfig.
func Match(pat Pattern, input []byte) Result {
	return ConfiguredMatch(DefaultConfig(), pat, input)
}

// ConfiguredMatch is Match with caller-supplied recursion/loop limits.
func ConfiguredMatch(cfg Config, pat Pattern, input []byte) Result {
	ctx := newMatchCtx(input, cfg)
	r := pat.match(ctx, 0)
	if !r.ok {
		return Result{Matched: false}
	}
	return Result{Matched: true, N: r.end, Captures: r.caps}
}

// MatchString is Match over a string input.
func MatchString(pat Pattern, s string) Result {
	return Match(pat, []byte(s))
}

// IsFullMatch reports whether pat matches the entirety of input, not just
// a prefix.
func IsFullMatch(pat Pattern, input []byte) bool {
	r := Match(pat, input)
	return r.Matched && r.N == len(input)
}
