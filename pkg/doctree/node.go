// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0

// Package doctree defines the generic document tree shared by both
// template formats. Every document is parsed into a tree of Node values
// (scalar, sequence, or ordered-key mapping) before any translation
// happens, and serialized back out of the same structure afterwards.
// Mappings remember insertion order so that repeated conversions of the
// same input produce byte-identical output.
package doctree

import "fmt"

// Kind discriminates the three shapes a Node can take.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

// Node is one value in a document tree. Exactly one of the three shapes
// is populated, according to Kind.
type Node struct {
	kind Kind

	scalar any // string, bool, int64, float64, or nil

	seq []*Node

	keys     []string
	children map[string]*Node
}

// String returns a scalar string node.
func String(s string) *Node {
	return &Node{kind: KindScalar, scalar: s}
}

// Bool returns a scalar boolean node.
func Bool(b bool) *Node {
	return &Node{kind: KindScalar, scalar: b}
}

// Int returns a scalar integer node.
func Int(i int64) *Node {
	return &Node{kind: KindScalar, scalar: i}
}

// Float returns a scalar floating-point node.
func Float(f float64) *Node {
	return &Node{kind: KindScalar, scalar: f}
}

// Null returns a scalar null node.
func Null() *Node {
	return &Node{kind: KindScalar, scalar: nil}
}

// NewSequence returns a sequence node holding the given items.
func NewSequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, seq: items}
}

// NewMapping returns an empty ordered mapping node.
func NewMapping() *Node {
	return &Node{kind: KindMapping, children: map[string]*Node{}}
}

// Kind reports the shape of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Scalar returns the underlying scalar value. It is nil for null scalars
// and for non-scalar nodes.
func (n *Node) Scalar() any {
	if n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// AsString returns the scalar string value, if this node holds one.
func (n *Node) AsString() (string, bool) {
	s, ok := n.scalar.(string)
	if n.kind != KindScalar {
		return "", false
	}
	return s, ok
}

// AsBool returns the scalar boolean value, if this node holds one.
func (n *Node) AsBool() (bool, bool) {
	b, ok := n.scalar.(bool)
	if n.kind != KindScalar {
		return false, false
	}
	return b, ok
}

// Append adds items to the end of a sequence node.
func (n *Node) Append(items ...*Node) {
	if n.kind != KindSequence {
		panic("doctree: Append on non-sequence node")
	}
	n.seq = append(n.seq, items...)
}

// Items returns the elements of a sequence node in order.
func (n *Node) Items() []*Node {
	return n.seq
}

// Set inserts or replaces the value for key in a mapping node. A new key
// is appended after all existing keys; replacing an existing key keeps
// its original position.
func (n *Node) Set(key string, value *Node) {
	if n.kind != KindMapping {
		panic("doctree: Set on non-mapping node")
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = value
}

// Get returns the value for key in a mapping node.
func (n *Node) Get(key string) (*Node, bool) {
	if n.kind != KindMapping {
		return nil, false
	}
	v, ok := n.children[key]
	return v, ok
}

// Delete removes key from a mapping node, preserving the relative order
// of the remaining keys.
func (n *Node) Delete(key string) {
	if n.kind != KindMapping {
		return
	}
	if _, ok := n.children[key]; !ok {
		return
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the mapping keys in insertion order.
func (n *Node) Keys() []string {
	return n.keys
}

// Len returns the number of entries in a mapping or sequence node, and
// zero for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.seq)
	case KindMapping:
		return len(n.keys)
	default:
		return 0
	}
}

// IsEmpty reports whether the node is a mapping or sequence with no
// entries. Scalars are never empty.
func (n *Node) IsEmpty() bool {
	switch n.kind {
	case KindSequence:
		return len(n.seq) == 0
	case KindMapping:
		return len(n.keys) == 0
	default:
		return false
	}
}

// Equal reports deep equality, including mapping key order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindScalar:
		return n.scalar == other.scalar
	case KindSequence:
		if len(n.seq) != len(other.seq) {
			return false
		}
		for i := range n.seq {
			if !n.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for i, k := range n.keys {
			if other.keys[i] != k {
				return false
			}
			if !n.children[k].Equal(other.children[k]) {
				return false
			}
		}
		return true
	}
	return false
}

func (n *Node) String() string {
	switch n.kind {
	case KindScalar:
		return fmt.Sprintf("%v", n.scalar)
	case KindSequence:
		return fmt.Sprintf("sequence(len=%d)", len(n.seq))
	case KindMapping:
		return fmt.Sprintf("mapping(len=%d)", len(n.keys))
	}
	return "invalid"
}
