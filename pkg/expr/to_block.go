// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0

// Package expr rewrites embedded intrinsic-function expressions between
// the two template formats. On the declarative side an intrinsic is a
// single-key mapping whose key names the function; on the block side it
// is an interpolation fragment inside a string. Translation is applied
// recursively through mappings and sequences, preserving order, and any
// form that is not recognized passes through unchanged.
package expr

import (
	"fmt"
	"strings"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
	"github.com/brokosz/cloud-format-converter/pkg/mapping"
)

// ToBlock translates intrinsic function calls in a declarative-format
// value into block-format interpolation strings. Single-key mappings are
// matched against the recognized function names; everything else
// recurses structurally.
func ToBlock(n *doctree.Node) *doctree.Node {
	switch n.Kind() {
	case doctree.KindMapping:
		if n.Len() == 1 {
			key := n.Keys()[0]
			args, _ := n.Get(key)
			if out, ok := intrinsicToBlock(key, args); ok {
				return out
			}
		}
		out := doctree.NewMapping()
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			out.Set(key, ToBlock(child))
		}
		return out
	case doctree.KindSequence:
		out := doctree.NewSequence()
		for _, item := range n.Items() {
			out.Append(ToBlock(item))
		}
		return out
	default:
		return n
	}
}

// intrinsicToBlock matches one recognized declarative intrinsic. The
// false return means the mapping was not an intrinsic (or its arguments
// had an unexpected shape) and should be treated as plain data.
func intrinsicToBlock(name string, args *doctree.Node) (*doctree.Node, bool) {
	switch name {
	case "Fn::Join":
		return joinToBlock(args)
	case "Fn::Sub":
		return subToBlock(args)
	case "Ref":
		return refToBlock(args)
	case "Fn::GetAtt":
		return getAttToBlock(args)
	case "Fn::Select":
		return selectToBlock(args)
	case "Condition":
		return conditionToBlock(args)
	default:
		return nil, false
	}
}

func joinToBlock(args *doctree.Node) (*doctree.Node, bool) {
	if args.Kind() != doctree.KindSequence || args.Len() != 2 {
		return nil, false
	}
	delimiter, ok := args.Items()[0].AsString()
	if !ok {
		return nil, false
	}
	items, err := doctree.EncodeJSONCompact(args.Items()[1])
	if err != nil {
		return nil, false
	}
	return doctree.String(fmt.Sprintf("${join('%s', %s)}", delimiter, items)), true
}

func subToBlock(args *doctree.Node) (*doctree.Node, bool) {
	// Fn::Sub with a plain template string.
	if template, ok := args.AsString(); ok {
		return doctree.String(substituteTokens(template, func(name string) string {
			return "${var." + name + "}"
		})), true
	}

	// Fn::Sub with an explicit substitution mapping: each ${key} is
	// replaced literally with the (translated) mapping value.
	if args.Kind() != doctree.KindSequence || args.Len() != 2 {
		return nil, false
	}
	template, ok := args.Items()[0].AsString()
	if !ok {
		return nil, false
	}
	values := args.Items()[1]
	if values.Kind() != doctree.KindMapping {
		return nil, false
	}
	result := template
	for _, key := range values.Keys() {
		value, _ := values.Get(key)
		if value.Kind() == doctree.KindMapping {
			value = ToBlock(value)
		}
		result = strings.ReplaceAll(result, "${"+key+"}", scalarText(value))
	}
	return doctree.String(result), true
}

func refToBlock(args *doctree.Node) (*doctree.Node, bool) {
	name, ok := args.AsString()
	if !ok {
		return nil, false
	}
	if strings.HasPrefix(name, "AWS::") {
		accessor, ok := mapping.PseudoParameterAccessor(name)
		if !ok {
			accessor = name
		}
		return doctree.String("${" + accessor + "}"), true
	}
	return doctree.String("${var." + name + "}"), true
}

func getAttToBlock(args *doctree.Node) (*doctree.Node, bool) {
	var resource, attribute string
	switch {
	case args.Kind() == doctree.KindSequence && args.Len() == 2:
		r, rok := args.Items()[0].AsString()
		a, aok := args.Items()[1].AsString()
		if !rok || !aok {
			return nil, false
		}
		resource, attribute = r, a
	default:
		// The short form "Resource.Attribute" appears in YAML templates.
		s, ok := args.AsString()
		if !ok {
			return nil, false
		}
		resource, attribute, ok = strings.Cut(s, ".")
		if !ok {
			return nil, false
		}
	}
	return doctree.String(fmt.Sprintf("${aws_%s.%s}",
		strings.ToLower(resource), strings.ToLower(attribute))), true
}

func selectToBlock(args *doctree.Node) (*doctree.Node, bool) {
	if args.Kind() != doctree.KindSequence || args.Len() != 2 {
		return nil, false
	}
	index := scalarText(args.Items()[0])
	array, err := doctree.EncodeJSONCompact(args.Items()[1])
	if err != nil {
		return nil, false
	}
	return doctree.String(fmt.Sprintf("${element(%s, %s)}", array, index)), true
}

func conditionToBlock(args *doctree.Node) (*doctree.Node, bool) {
	name, ok := args.AsString()
	if !ok {
		return nil, false
	}
	return doctree.String("${var." + name + "}"), true
}

// substituteTokens rewrites every ${name} token in template using the
// given replacement function.
func substituteTokens(template string, replace func(name string) string) string {
	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:start])
		b.WriteString(replace(rest[start+2 : start+end]))
		rest = rest[start+end+1:]
	}
}

// scalarText renders a node into its textual form for literal template
// substitution.
func scalarText(n *doctree.Node) string {
	if s, ok := n.AsString(); ok {
		return s
	}
	if n.Kind() == doctree.KindScalar {
		return fmt.Sprintf("%v", n.Scalar())
	}
	text, err := doctree.EncodeJSONCompact(n)
	if err != nil {
		return n.String()
	}
	return text
}
