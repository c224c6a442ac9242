// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package peg

import "fmt"

// lookAheadPattern succeeds iff pat matches next, consuming nothing.
type lookAheadPattern struct {
	pat Pattern
}

// LookAhead returns a zero-width positive lookahead over pat.
func LookAhead(pat Pattern) Pattern {
	return &lookAheadPattern{pat: pat}
}

func (p *lookAheadPattern) match(ctx *matchCtx, pos int) matchResult {
	r := p.pat.match(ctx, pos)
	if !r.ok {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: pos}
}

func (p *lookAheadPattern) String() string { return fmt.Sprintf("&%s", p.pat) }

// negationPattern succeeds iff pat does not match, consuming nothing.
type negationPattern struct {
	pat Pattern
}

// Negation returns a zero-width negative lookahead over pat.
func Negation(pat Pattern) Pattern {
	return &negationPattern{pat: pat}
}

func (p *negationPattern) match(ctx *matchCtx, pos int) matchResult {
	r := p.pat.match(ctx, pos)
	if r.ok {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: pos}
}

func (p *negationPattern) String() string { return fmt.Sprintf("!%s", p.pat) }

// lookBehindPattern succeeds iff pat matches the bytes immediately
// preceding the cursor. pat must have a statically fixed length and no
// captures, enforced at construction time.
type lookBehindPattern struct {
	pat Pattern
	n   int
}

// LookBehind returns a zero-width lookbehind over pat. Construction fails
// if pat is not of fixed byte length, has captures, or its fixed length
// exceeds maxLookBehind (a generous but finite bound, since an unbounded
// lookbehind would require buffering the entire input).
func LookBehind(pat Pattern) (Pattern, error) {
	if HasCaptures(pat) {
		return nil, errf("lookbehind pattern has captures")
	}
	n, ok := FixedLength(pat)
	if !ok {
		return nil, errf("lookbehind pattern does not have fixed length")
	}
	const maxLookBehind = 255
	if n > maxLookBehind {
		return nil, errf("lookbehind pattern too long")
	}
	return &lookBehindPattern{pat: pat, n: n}, nil
}

func (p *lookBehindPattern) match(ctx *matchCtx, pos int) matchResult {
	start := pos - p.n
	if start < 0 {
		return matchResult{ok: false}
	}
	r := p.pat.match(ctx, start)
	if !r.ok || r.end != pos {
		return matchResult{ok: false}
	}
	return matchResult{ok: true, end: pos}
}

func (p *lookBehindPattern) String() string { return fmt.Sprintf("<%s", p.pat) }

// MatchesEmpty statically determines whether pat can succeed while
// consuming zero bytes. Used by rep_atleast/rep_atmost at construction
// time to reject a body that would loop forever (§4.2, §4.1).
func MatchesEmpty(pat Pattern) bool {
	switch p := pat.(type) {
	case *litPattern:
		return len(p.bytes) == 0
	case *byteRangePattern:
		return false
	case *seqPattern:
		for _, sub := range p.pats {
			if !MatchesEmpty(sub) {
				return false
			}
		}
		return true
	case *altPattern:
		for _, sub := range p.pats {
			if MatchesEmpty(sub) {
				return true
			}
		}
		return false
	case *repAtLeastPattern:
		return p.n == 0
	case *repAtMostPattern:
		return true // zero repetitions is always a possibility
	case *lookAheadPattern, *negationPattern, *lookBehindPattern:
		return true // zero-width by construction
	case *capturePattern:
		return MatchesEmpty(p.pat)
	case *vrefPattern, *grammarPattern:
		// Conservative: a recursive rule's emptiness cannot be decided
		// without solving the fixpoint; assume non-empty so that rep_*
		// over a grammar is not spuriously rejected.
		return false
	default:
		return false
	}
}

// FixedLength statically determines whether pat matches exactly n bytes
// on every success, returning (n, true) if so. Used by look_behind at
// construction time (§4.1).
func FixedLength(pat Pattern) (int, bool) {
	switch p := pat.(type) {
	case *litPattern:
		return len(p.bytes), true
	case *byteRangePattern:
		return 1, true
	case *seqPattern:
		total := 0
		for _, sub := range p.pats {
			n, ok := FixedLength(sub)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	case *altPattern:
		if len(p.pats) == 0 {
			return 0, false
		}
		n, ok := FixedLength(p.pats[0])
		if !ok {
			return 0, false
		}
		for _, sub := range p.pats[1:] {
			m, ok := FixedLength(sub)
			if !ok || m != n {
				return 0, false
			}
		}
		return n, true
	case *lookAheadPattern, *negationPattern, *lookBehindPattern:
		return 0, true
	case *capturePattern:
		return FixedLength(p.pat)
	default:
		return 0, false
	}
}

// HasCaptures reports whether pat contains a capture() wrapper anywhere in
// its tree. Used by look_behind at construction time (§4.1).
func HasCaptures(pat Pattern) bool {
	switch p := pat.(type) {
	case *capturePattern:
		return true
	case *seqPattern:
		for _, sub := range p.pats {
			if HasCaptures(sub) {
				return true
			}
		}
		return false
	case *altPattern:
		for _, sub := range p.pats {
			if HasCaptures(sub) {
				return true
			}
		}
		return false
	case *repAtLeastPattern:
		return HasCaptures(p.pat)
	case *repAtMostPattern:
		return HasCaptures(p.pat)
	case *lookAheadPattern:
		return HasCaptures(p.pat)
	case *negationPattern:
		return HasCaptures(p.pat)
	case *lookBehindPattern:
		return HasCaptures(p.pat)
	default:
		return false
	}
}
