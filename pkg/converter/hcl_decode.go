// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

// decodeBlockDocument parses block-format source into the generic tree.
// The resulting shape mirrors the language's nesting: resource blocks
// group under "resource" by type then name, variable/output/provider
// blocks by their single label. Attribute values that are constant fold
// to plain scalars; anything referring to other objects is captured as
// an interpolation string so the expression translator can rewrite it.
func decodeBlockDocument(source string) (*doctree.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(source), "input.tf")
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing block document: %w", diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parsing block document: unexpected body type %T", file.Body)
	}

	src := []byte(source)
	root := doctree.NewMapping()

	for _, attr := range sortedAttributes(body.Attributes) {
		root.Set(attr.Name, decodeExpression(attr.Expr, src))
	}

	for _, block := range body.Blocks {
		section := ensureMapping(root, block.Type)
		target := section
		for _, label := range block.Labels {
			target = ensureMapping(target, label)
		}
		var decoded *doctree.Node
		switch block.Type {
		case "variable":
			decoded = decodeVariableBody(block.Body, src)
		case "resource":
			decoded = decodeResourceBody(block.Body, src)
		default:
			decoded = decodeBody(block.Body, src)
		}
		mergeMapping(target, decoded)
	}

	return root, nil
}

func ensureMapping(parent *doctree.Node, key string) *doctree.Node {
	if existing, ok := parent.Get(key); ok && existing.Kind() == doctree.KindMapping {
		return existing
	}
	child := doctree.NewMapping()
	parent.Set(key, child)
	return child
}

func mergeMapping(dst, src *doctree.Node) {
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		dst.Set(key, value)
	}
}

func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	// Attribute maps have no inherent order; source position restores it.
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}

// decodeBody decodes attributes in source order, then nested blocks. A
// repeated nested block type becomes a sequence of mappings.
func decodeBody(body *hclsyntax.Body, src []byte) *doctree.Node {
	out := doctree.NewMapping()
	for _, attr := range sortedAttributes(body.Attributes) {
		out.Set(attr.Name, decodeExpression(attr.Expr, src))
	}
	for _, block := range body.Blocks {
		appendNestedBlock(out, block.Type, decodeBody(block.Body, src))
	}
	return out
}

func appendNestedBlock(out *doctree.Node, key string, decoded *doctree.Node) {
	existing, ok := out.Get(key)
	if !ok {
		out.Set(key, decoded)
		return
	}
	if existing.Kind() == doctree.KindSequence {
		existing.Append(decoded)
		return
	}
	out.Set(key, doctree.NewSequence(existing, decoded))
}

// decodeResourceBody is decodeBody with one special case: depends_on
// entries are captured as bare reference names rather than
// interpolation strings, so dependency lists round-trip as names.
func decodeResourceBody(body *hclsyntax.Body, src []byte) *doctree.Node {
	out := doctree.NewMapping()
	for _, attr := range sortedAttributes(body.Attributes) {
		if attr.Name == "depends_on" {
			out.Set(attr.Name, decodeReferenceList(attr.Expr, src))
			continue
		}
		out.Set(attr.Name, decodeExpression(attr.Expr, src))
	}
	for _, block := range body.Blocks {
		appendNestedBlock(out, block.Type, decodeBody(block.Body, src))
	}
	return out
}

// decodeVariableBody captures the type constraint and any validation
// condition as bare expression text: both are expressions in the block
// language but travel as plain strings in the declarative format.
func decodeVariableBody(body *hclsyntax.Body, src []byte) *doctree.Node {
	out := doctree.NewMapping()
	for _, attr := range sortedAttributes(body.Attributes) {
		if attr.Name == "type" {
			out.Set(attr.Name, doctree.String(rawText(attr.Expr, src)))
			continue
		}
		out.Set(attr.Name, decodeExpression(attr.Expr, src))
	}
	for _, block := range body.Blocks {
		if block.Type != "validation" {
			appendNestedBlock(out, block.Type, decodeBody(block.Body, src))
			continue
		}
		validation := doctree.NewMapping()
		for _, attr := range sortedAttributes(block.Body.Attributes) {
			if attr.Name == "condition" {
				validation.Set(attr.Name, doctree.String(rawText(attr.Expr, src)))
				continue
			}
			validation.Set(attr.Name, decodeExpression(attr.Expr, src))
		}
		appendNestedBlock(out, "validation", validation)
	}
	return out
}

func decodeReferenceList(expr hclsyntax.Expression, src []byte) *doctree.Node {
	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		return doctree.NewSequence(doctree.String(rawText(expr, src)))
	}
	out := doctree.NewSequence()
	for _, item := range tuple.Exprs {
		out.Append(doctree.String(rawText(item, src)))
	}
	return out
}

func decodeExpression(expr hclsyntax.Expression, src []byte) *doctree.Node {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return ctyToNode(e.Val)
	case *hclsyntax.TupleConsExpr:
		out := doctree.NewSequence()
		for _, item := range e.Exprs {
			out.Append(decodeExpression(item, src))
		}
		return out
	case *hclsyntax.ObjectConsExpr:
		out := doctree.NewMapping()
		for _, item := range e.Items {
			out.Set(objectKey(item.KeyExpr, src), decodeExpression(item.ValueExpr, src))
		}
		return out
	case *hclsyntax.TemplateExpr:
		if e.IsStringLiteral() {
			val, diags := e.Value(nil)
			if !diags.HasErrors() {
				return ctyToNode(val)
			}
		}
		return doctree.String(templateText(e, src))
	case *hclsyntax.TemplateWrapExpr:
		return doctree.String("${" + rawText(e.Wrapped, src) + "}")
	case *hclsyntax.ScopeTraversalExpr:
		return doctree.String("${" + rawText(e, src) + "}")
	default:
		if len(expr.Variables()) == 0 {
			if val, diags := expr.Value(nil); !diags.HasErrors() {
				return ctyToNode(val)
			}
		}
		return doctree.String("${" + rawText(expr, src) + "}")
	}
}

// templateText renders a quoted template back into its interpolation
// string form: literal parts verbatim, every other part re-wrapped as
// ${...} around its source text.
func templateText(e *hclsyntax.TemplateExpr, src []byte) string {
	var out string
	for _, part := range e.Parts {
		if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String {
			out += lit.Val.AsString()
			continue
		}
		out += "${" + rawText(part, src) + "}"
	}
	return out
}

func objectKey(keyExpr hclsyntax.Expression, src []byte) string {
	// ObjectConsKeyExpr evaluates bare keywords and quoted literals
	// alike to their string value.
	if val, diags := keyExpr.Value(nil); !diags.HasErrors() && val.Type() == cty.String {
		return val.AsString()
	}
	return rawText(keyExpr, src)
}

func rawText(expr hclsyntax.Expression, src []byte) string {
	rng := expr.Range()
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return string(src[rng.Start.Byte:rng.End.Byte])
}

func ctyToNode(val cty.Value) *doctree.Node {
	if val.IsNull() {
		return doctree.Null()
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return doctree.String(val.AsString())
	case ty == cty.Bool:
		return doctree.Bool(val.True())
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return doctree.Int(i)
		}
		f, _ := bf.Float64()
		return doctree.Float(f)
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := doctree.NewSequence()
		for it := val.ElementIterator(); it.Next(); {
			_, item := it.Element()
			out.Append(ctyToNode(item))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := doctree.NewMapping()
		for it := val.ElementIterator(); it.Next(); {
			key, item := it.Element()
			out.Set(key.AsString(), ctyToNode(item))
		}
		return out
	default:
		return doctree.String(fmt.Sprintf("%v", val))
	}
}
