// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package utf8range

// Package-level boundary encodings for "every codepoint whose UTF-8
// encoding is exactly k bytes long", indexed by k (index 0 unused).
var lengthStart = [5][]byte{
	nil,
	{0x00},
	{0xC2, 0x80},
	{0xE0, 0xA0, 0x80},
	{0xF0, 0x90, 0x80, 0x80},
}

var lengthEnd = [5][]byte{
	nil,
	{0x7F},
	{0xDF, 0xBF},
	{0xEF, 0xBF, 0xBF},
	{0xF4, 0x8F, 0xBF, 0xBF},
}

// restriction holds the valid second-byte range for one of the four
// leading bytes whose naive "second byte ranges 80..BF" would otherwise
// admit an overlong encoding (E0 80.., F0 80..), a surrogate codepoint
// (ED A0.. through ED BF.., i.e. D800..DFFF), or a codepoint beyond
// U+10FFFF (F4 90..).
type restriction struct{ lo, hi byte }

var secondByteRestriction = map[byte]restriction{
	0xE0: {0xA0, 0xBF},
	0xED: {0x80, 0x9F},
	0xF0: {0x90, 0xBF},
	0xF4: {0x80, 0x8F},
}

// contRange returns the valid [lo,hi] range for the byte at absolute
// position idx within a sequence whose leading byte is firstByte. Only
// the second byte (idx == 1) of a 3- or 4-byte sequence carries a
// restriction; every other continuation byte ranges 80..BF.
func contRange(firstByte byte, idx int) (lo, hi byte) {
	if idx == 1 {
		if r, ok := secondByteRestriction[firstByte]; ok {
			return r.lo, r.hi
		}
	}
	return 0x80, 0xBF
}

// Encode returns the UTF-8 byte encoding of codepoint cp, 1 to 4 bytes.
// Unlike unicode/utf8.EncodeRune, Encode does not substitute U+FFFD for
// surrogate codepoints (D800..DFFF): the range compiler's contract is to
// lower whatever interval it is given, and surrogate exclusion is a
// caller-side policy decision (see the StrictSurrogates option), not
// something baked into the encoder.
func Encode(cp int) []byte {
	switch {
	case cp <= 0x7F:
		return []byte{byte(cp)}
	case cp <= 0x7FF:
		return []byte{
			0xC0 | byte(cp>>6),
			0x80 | byte(cp&0x3F),
		}
	case cp <= 0xFFFF:
		return []byte{
			0xE0 | byte(cp>>12),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	default:
		return []byte{
			0xF0 | byte(cp>>18),
			0x80 | byte((cp>>12)&0x3F),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	}
}

// Length returns the number of bytes Encode(cp) would produce.
func Length(cp int) int {
	switch {
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// IsSurrogate reports whether cp falls in the UTF-16 surrogate range,
// which is not a valid Unicode scalar value.
func IsSurrogate(cp int) bool {
	return cp >= 0xD800 && cp <= 0xDFFF
}

const MaxCodepoint = 0x10FFFF
