// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package levenshtein finds the candidate names closest to an unresolved
// identifier, for the "did you mean" suggestion appended to an
// unbound-identifier error (§4.2).
package levenshtein

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// ClosestStrings returns the candidates with the smallest edit distance to
// a, provided that distance is less than minDistance. Ties are all
// returned, sorted for deterministic error messages.
func ClosestStrings(minDistance int, a string, candidates []string) []string {
	closestStrings := []string{}
	for _, c := range candidates {
		levDist := levenshtein.ComputeDistance(a, c)
		switch {
		case levDist < minDistance:
			closestStrings = []string{c}
			minDistance = levDist
		case levDist == minDistance && len(closestStrings) > 0:
			closestStrings = append(closestStrings, c)
		default:
			continue
		}
	}
	slices.Sort(closestStrings)
	return slices.Compact(closestStrings)
}
