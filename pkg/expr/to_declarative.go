// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package expr

import (
	"regexp"
	"strings"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

var (
	joinCallPattern    = regexp.MustCompile(`join\("([^"]+)",\s*\[(.*)\]\)`)
	varAccessorPattern = regexp.MustCompile(`\$\{var\.([^}]+)\}`)
)

// ToDeclarative translates block-format interpolation strings into
// declarative intrinsic-function calls. Only scalar strings containing
// an interpolation marker are candidates; the recognized fragments are
// tried in a fixed order and the first match wins. Strings with no
// recognized fragment pass through unchanged.
func ToDeclarative(n *doctree.Node) *doctree.Node {
	switch n.Kind() {
	case doctree.KindMapping:
		out := doctree.NewMapping()
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			out.Set(key, ToDeclarative(child))
		}
		return out
	case doctree.KindSequence:
		out := doctree.NewSequence()
		for _, item := range n.Items() {
			out.Append(ToDeclarative(item))
		}
		return out
	default:
		s, ok := n.AsString()
		if !ok || !strings.Contains(s, "${") {
			return n
		}
		return interpolationToDeclarative(s)
	}
}

func interpolationToDeclarative(s string) *doctree.Node {
	switch {
	case strings.Contains(s, "join"):
		return joinToDeclarative(s)
	case strings.Contains(s, "format"):
		return subFromFormat(s)
	case strings.Contains(s, "aws_region"):
		return refNode("AWS::Region")
	// The account id is read through the caller-identity data source, so
	// both the accessor and the bare attribute name must trigger.
	case strings.Contains(s, "aws_caller_identity"), strings.Contains(s, "aws_account_id"):
		return refNode("AWS::AccountId")
	default:
		return doctree.String(s)
	}
}

// joinToDeclarative reconstructs an Fn::Join call from a
// join("delimiter", [items]) fragment. The item list must be a literal
// that parses as a JSON array; anything else passes through unchanged.
func joinToDeclarative(s string) *doctree.Node {
	match := joinCallPattern.FindStringSubmatch(s)
	if match == nil {
		return doctree.String(s)
	}
	items, err := doctree.DecodeJSON([]byte("[" + match[2] + "]"))
	if err != nil {
		return doctree.String(s)
	}
	call := doctree.NewMapping()
	call.Set("Fn::Join", doctree.NewSequence(doctree.String(match[1]), items))
	return call
}

// subFromFormat reconstructs an Fn::Sub from a format-style template:
// each ${var.name} accessor becomes a ${name} substitution token. Only
// this simple subset is reconstructible.
func subFromFormat(s string) *doctree.Node {
	template := varAccessorPattern.ReplaceAllString(s, "${$1}")
	call := doctree.NewMapping()
	call.Set("Fn::Sub", doctree.String(template))
	return call
}

func refNode(name string) *doctree.Node {
	call := doctree.NewMapping()
	call.Set("Ref", doctree.String(name))
	return call
}
