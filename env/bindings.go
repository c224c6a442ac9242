// Copyright 2024 The RPL Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package env

import "github.com/vmorris/rosie-pattern-language/ast"

type bindingEntry struct {
	key  ast.Identifier
	val  Binding
	next *bindingEntry
}

// bindingMap is an open-hashed Identifier->Binding table: each frame's
// bindings store. Trimmed from the teacher's generic util.HashMap to
// exactly what a frame needs (Put/Get/Len plus an Iter for "did you mean"
// candidate collection in the unbound-identifier hint, §4.2) rather than
// carrying Copy/Equal/Hash/Delete/Update/String, none of which any caller
// here exercises.
type bindingMap struct {
	table map[int]*bindingEntry
	size  int
}

func newBindingMap() *bindingMap {
	return &bindingMap{table: make(map[int]*bindingEntry)}
}

func identHash(id ast.Identifier) int {
	h := 0
	for _, r := range id.Package + "\x00" + id.LocalName {
		h = h*31 + int(r)
	}
	return h
}

// Get returns the value bound to k, if any.
func (m *bindingMap) Get(k ast.Identifier) (Binding, bool) {
	for e := m.table[identHash(k)]; e != nil; e = e.next {
		if e.key == k {
			return e.val, true
		}
	}
	return Binding{}, false
}

// Put inserts or overwrites the value bound to k.
func (m *bindingMap) Put(k ast.Identifier, v Binding) {
	h := identHash(k)
	for e := m.table[h]; e != nil; e = e.next {
		if e.key == k {
			e.val = v
			return
		}
	}
	m.table[h] = &bindingEntry{key: k, val: v, next: m.table[h]}
	m.size++
}

// Len returns the number of distinct keys bound.
func (m *bindingMap) Len() int { return m.size }

// Iter calls fn for every key/value pair, in unspecified order.
func (m *bindingMap) Iter(fn func(ast.Identifier, Binding)) {
	for _, e := range m.table {
		for ; e != nil; e = e.next {
			fn(e.key, e.val)
		}
	}
}
