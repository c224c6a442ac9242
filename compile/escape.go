// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package compile

import "strconv"

// decodeEscapes expands backslash escapes in a raw literal/string token,
// returning the decoded bytes. On an unrecognized escape it returns ok =
// false and the offending escape text (e.g. "q" for "\q"), which callers
// format into their own "invalid escape sequence in <context>: \X"
// message.
func decodeEscapes(raw string) (decoded string, badEscape string, ok bool) {
	var out []byte
	in := []byte(raw)
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(in) {
			return "", "", false
		}
		i++
		switch in[i] {
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case 'x':
			if i+2 >= len(in) {
				return "", "x", false
			}
			v, err := strconv.ParseUint(string(in[i+1:i+3]), 16, 8)
			if err != nil {
				return "", "x" + string(in[i+1:i+3]), false
			}
			out = append(out, byte(v))
			i += 2
		default:
			if in[i] >= '0' && in[i] <= '7' {
				j := i
				for j < len(in) && j < i+3 && in[j] >= '0' && in[j] <= '7' {
					j++
				}
				v, err := strconv.ParseUint(string(in[i:j]), 8, 16)
				if err != nil || v > 255 {
					return "", string(in[i:j]), false
				}
				out = append(out, byte(v))
				i = j - 1
				continue
			}
			return "", string(in[i]), false
		}
	}
	return string(out), "", true
}
