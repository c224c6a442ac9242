// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package utf8range lowers an integer codepoint interval [N,M] into a PEG
// expression matching exactly the UTF-8 byte sequences encoding the
// codepoints in that interval. It is the one piece of the front end with
// no direct analog anywhere in the example pack; the decomposition below
// follows the recursive byte-range-tree construction that Unicode range
// compilers in this family (LPeg's re, RE2's UTF-8 tables) all converge
// on, adapted to emit this module's own peg.Pattern primitives directly
// rather than an intermediate tree plus a separate expansion pass — the
// tree nodes fold away naturally once the fringe/middle construction is
// expressed as ordinary recursive functions.
package utf8range

import (
	"fmt"

	"github.com/vmorris/rosie-pattern-language/peg"
)

// Compile returns a Pattern matching exactly the UTF-8 encodings of the
// codepoints in [n,m]. n and m must satisfy 0 <= n <= m <= MaxCodepoint;
// violating that is a compiler invariant violation, not a recoverable
// input error, so Compile reports it the same way a construction-time
// peg error would.
func Compile(n, m int) (peg.Pattern, error) {
	if n < 0 || m > MaxCodepoint {
		return nil, fmt.Errorf("codepoint out of range: [%d,%d]", n, m)
	}
	if n > m {
		return nil, fmt.Errorf("invalid codepoint range: %d > %d", n, m)
	}
	s := Encode(n)
	e := Encode(m)
	if len(s) == len(e) {
		return rsame(s, e, 0, 0), nil
	}
	return buildMultiLength(s, e), nil
}

// CompileStrict is Compile with the surrogate-exclusion open question
// (§9) resolved at the call site: when strict is true, a range overlapping
// D800..DFFF is rejected outright instead of silently compiling a pattern
// that would match surrogate byte sequences no valid UTF-8 text contains.
func CompileStrict(n, m int, strict bool) (peg.Pattern, error) {
	if strict && n <= 0xDFFF && m >= 0xD800 {
		return nil, fmt.Errorf("codepoint range [%d,%d] includes surrogate codepoints D800-DFFF", n, m)
	}
	return Compile(n, m)
}

// rsame builds the Pattern for a same-length range [s,e], having already
// matched bytes [0,idx) as equal between s and e. firstByte is s[0] (==
// e[0]) once idx > 0; it is ignored while idx == 0, since no leading byte
// has been committed to yet.
func rsame(s, e []byte, idx int, firstByte byte) peg.Pattern {
	L := len(s)
	if idx == L-1 {
		return peg.ByteRange(s[idx], e[idx])
	}
	if s[idx] == e[idx] {
		next := firstByte
		if idx == 0 {
			next = s[0]
		}
		return peg.Seq(peg.ByteRange(s[idx], s[idx]), rsame(s, e, idx+1, next))
	}

	var branches []peg.Pattern

	lowFirst := firstByte
	if idx == 0 {
		lowFirst = s[idx]
	}
	branches = append(branches, peg.Seq(peg.ByteRange(s[idx], s[idx]), rangeToMax(lowFirst, s, idx+1, L)))

	if int(s[idx])+1 <= int(e[idx])-1 {
		if idx == 0 {
			branches = append(branches, midRange(s[idx]+1, e[idx]-1, L))
		} else {
			branches = append(branches, peg.Seq(peg.ByteRange(s[idx]+1, e[idx]-1), fullTail(idx+1, L, firstByte)))
		}
	}

	highFirst := firstByte
	if idx == 0 {
		highFirst = e[idx]
	}
	branches = append(branches, peg.Seq(peg.ByteRange(e[idx], e[idx]), rangeFromMin(highFirst, e, idx+1, L)))

	return peg.Alt(branches...)
}

// rangeToMax matches every L-byte sequence, sharing firstByte as its
// leading byte, whose bytes [pos,L) are >= s[pos:] in the usual
// lexicographic sense, up to the maximal byte value at every position.
func rangeToMax(firstByte byte, s []byte, pos, L int) peg.Pattern {
	lo := s[pos]
	_, hi := contRange(firstByte, pos)
	if pos == L-1 {
		return peg.ByteRange(lo, hi)
	}
	if lo == hi {
		return peg.Seq(peg.ByteRange(lo, lo), rangeToMax(firstByte, s, pos+1, L))
	}
	branches := []peg.Pattern{
		peg.Seq(peg.ByteRange(lo, lo), rangeToMax(firstByte, s, pos+1, L)),
	}
	if lo+1 <= hi {
		branches = append(branches, peg.Seq(peg.ByteRange(lo+1, hi), fullTail(pos+1, L, firstByte)))
	}
	return peg.Alt(branches...)
}

// rangeFromMin is rangeToMax's mirror: every L-byte sequence sharing
// firstByte whose bytes [pos,L) are <= e[pos:], down to the minimal byte
// value at every position.
func rangeFromMin(firstByte byte, e []byte, pos, L int) peg.Pattern {
	lo, _ := contRange(firstByte, pos)
	hi := e[pos]
	if pos == L-1 {
		return peg.ByteRange(lo, hi)
	}
	if lo == hi {
		return peg.Seq(peg.ByteRange(lo, lo), rangeFromMin(firstByte, e, pos+1, L))
	}
	var branches []peg.Pattern
	if lo <= hi-1 {
		branches = append(branches, peg.Seq(peg.ByteRange(lo, hi-1), fullTail(pos+1, L, firstByte)))
	}
	branches = append(branches, peg.Seq(peg.ByteRange(hi, hi), rangeFromMin(firstByte, e, pos+1, L)))
	return peg.Alt(branches...)
}

// fullTail matches every valid combination of the continuation bytes at
// positions [pos,L) for a sequence led by firstByte.
func fullTail(pos, L int, firstByte byte) peg.Pattern {
	pats := make([]peg.Pattern, 0, L-pos)
	for p := pos; p < L; p++ {
		lo, hi := contRange(firstByte, p)
		pats = append(pats, peg.ByteRange(lo, hi))
	}
	return peg.Seq(pats...)
}

// midRange matches every L-byte sequence whose leading byte lies in
// [lo,hi] (inclusive) and whose remaining bytes range over their entire
// valid domain. For 3- and 4-byte sequences this must split at the
// leading bytes (E0, ED, F0, F4) that restrict their own second byte, so
// that e.g. a leading-byte range spanning E0..EF does not admit the
// overlong/surrogate second bytes that a flat 80..BF would allow.
func midRange(lo, hi byte, L int) peg.Pattern {
	switch L {
	case 1:
		return peg.ByteRange(lo, hi)
	case 2:
		return peg.Seq(peg.ByteRange(lo, hi), peg.ByteRange(0x80, 0xBF))
	case 3:
		return splitSpecialFirstByte(lo, hi, 3, []byte{0xE0, 0xED})
	case 4:
		return splitSpecialFirstByte(lo, hi, 4, []byte{0xF0, 0xF4})
	default:
		panic(fmt.Sprintf("utf8range: invalid sequence length %d", L))
	}
}

// splitSpecialFirstByte builds the Pattern for midRange's 3- and 4-byte
// cases, carving [lo,hi] into runs that fall entirely between specials
// (handled uniformly with 80..BF continuations) and the individual
// special leading bytes (handled with their own restricted second-byte
// range).
func splitSpecialFirstByte(lo, hi byte, L int, specials []byte) peg.Pattern {
	var branches []peg.Pattern
	cur := int(lo)
	for _, sp := range specials {
		s := int(sp)
		if s < cur || s > int(hi) {
			continue
		}
		if cur < s {
			branches = append(branches, normalFirstByteRun(byte(cur), byte(s-1), L))
		}
		r := secondByteRestriction[sp]
		pats := []peg.Pattern{peg.ByteRange(sp, sp), peg.ByteRange(r.lo, r.hi)}
		for p := 2; p < L; p++ {
			pats = append(pats, peg.ByteRange(0x80, 0xBF))
		}
		branches = append(branches, peg.Seq(pats...))
		cur = s + 1
	}
	if cur <= int(hi) {
		branches = append(branches, normalFirstByteRun(byte(cur), hi, L))
	}
	return peg.Alt(branches...)
}

// normalFirstByteRun matches an L-byte sequence whose leading byte is in
// [lo,hi], none of which requires a restricted second byte, with every
// continuation byte ranging 80..BF.
func normalFirstByteRun(lo, hi byte, L int) peg.Pattern {
	pats := []peg.Pattern{peg.ByteRange(lo, hi)}
	for p := 1; p < L; p++ {
		pats = append(pats, peg.ByteRange(0x80, 0xBF))
	}
	return peg.Seq(pats...)
}

// fromToLengthEnd matches from s to the last codepoint whose encoding has
// the same length as s (Case B's first branch, §4.3).
func fromToLengthEnd(s []byte) peg.Pattern {
	L := len(s)
	if L == 1 {
		return peg.ByteRange(s[0], lengthEnd[1][0])
	}
	hiFirst := lengthEnd[L][0]
	if s[0] == hiFirst {
		return peg.Seq(peg.ByteRange(s[0], s[0]), rangeToMax(s[0], s, 1, L))
	}
	return peg.Alt(
		peg.Seq(peg.ByteRange(s[0], s[0]), rangeToMax(s[0], s, 1, L)),
		midRange(s[0]+1, hiFirst, L),
	)
}

// fromLengthStartTo matches from the first codepoint whose encoding has
// the same length as e, up to e (Case B's last branch, §4.3).
func fromLengthStartTo(e []byte) peg.Pattern {
	L := len(e)
	if L == 1 {
		return peg.ByteRange(lengthStart[1][0], e[0])
	}
	loFirst := lengthStart[L][0]
	if e[0] == loFirst {
		return peg.Seq(peg.ByteRange(e[0], e[0]), rangeFromMin(e[0], e, 1, L))
	}
	return peg.Alt(
		midRange(loFirst, e[0]-1, L),
		peg.Seq(peg.ByteRange(e[0], e[0]), rangeFromMin(e[0], e, 1, L)),
	)
}

// fullLengthRange matches every codepoint whose UTF-8 encoding is exactly
// L bytes long.
func fullLengthRange(L int) peg.Pattern {
	return midRange(lengthStart[L][0], lengthEnd[L][0], L)
}

// buildMultiLength implements §4.3's Case B: s and e encode to different
// lengths, so the match is an ordered choice over the |s|-length tail,
// every fully-spanned intermediate length, and the |e|-length head.
func buildMultiLength(s, e []byte) peg.Pattern {
	branches := []peg.Pattern{fromToLengthEnd(s)}
	for k := len(s) + 1; k <= len(e)-1; k++ {
		branches = append(branches, fullLengthRange(k))
	}
	branches = append(branches, fromLengthStartTo(e))
	return peg.Alt(branches...)
}
