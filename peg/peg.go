// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package peg implements the executable PEG (Parsing Expression Grammar)
// primitives that the compiler emits against: literal and byte-range
// matching, sequencing, ordered choice, lookahead/lookbehind/negation,
// bounded and unbounded repetition, capture wrapping, and a grammar
// fixpoint for mutually recursive rules.
//
// Design is grounded on the combinator shape of github.com/hucsmn/peg
// (Seq/Alt/Q0/Q1/Qn/Not/Test/capture groups), translated to the primitive
// names the compiler's contract requires (lit, byte_range, seq, alt,
// look_ahead, look_behind, negation, rep_atleast, rep_atmost, capture,
// grammar). Unlike hucsmn/peg's continuation-passing matcher, matching
// here is a direct recursive descent guarded by Config limits, which is
// adequate since the compiler (not an interactive parser) is the only
// producer of these trees and never builds unbounded recursion depth by
// itself.
package peg

import "fmt"

// Default limits on recursion depth, mirroring hucsmn/peg's
// DefaultCallstackLimit/DefaultLoopLimit so that a left-recursive grammar
// or a pathological rep_* fails fast instead of exhausting the Go stack.
const (
	DefaultCallstackLimit = 500
	DefaultLoopLimit      = 10000
)

// Config bounds a single match run.
type Config struct {
	CallstackLimit int
	LoopLimit      int
}

// DefaultConfig returns the limits used when none are supplied.
func DefaultConfig() Config {
	return Config{CallstackLimit: DefaultCallstackLimit, LoopLimit: DefaultLoopLimit}
}

// Pattern is the tree representation of a compiled PEG expression. Any
// back-end satisfying this interface is acceptable to the compiler; this
// package provides the only implementation the compiler itself needs.
type Pattern interface {
	fmt.Stringer
	match(ctx *matchCtx, pos int) matchResult
}

// matchResult is the outcome of attempting to match a Pattern at a given
// position.
type matchResult struct {
	ok   bool
	end  int // byte offset immediately after the match; == pos when consuming nothing
	caps []CaptureSpan
}

// matchCtx threads the input bytes and recursion bookkeeping through a
// match. It is not exported: callers only ever see Match/MatchString. depth
// counts vref descents against cfg.CallstackLimit so a left-recursive or
// pathologically deep grammar fails fast instead of exhausting the Go
// stack.
type matchCtx struct {
	input []byte
	cfg   Config
	depth int
}

func newMatchCtx(input []byte, cfg Config) *matchCtx {
	return &matchCtx{input: input, cfg: cfg}
}

// ConstructionError is returned by constructors that must validate their
// argument at build time (rep_atleast/rep_atmost over an empty-matching
// body, look_behind over a non-fixed-length or capturing body).
type ConstructionError struct {
	Message string
}

func (e *ConstructionError) Error() string { return e.Message }

func errf(format string, a ...interface{}) *ConstructionError {
	return &ConstructionError{Message: fmt.Sprintf(format, a...)}
}
