// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

// MarshalBlock serializes a block-format tree (as produced by
// ToBlockFormat) into textual block syntax. Strings carrying ${...}
// fragments are written as live interpolation templates rather than
// escaped literals; type constraints, validation conditions, and
// depends_on entries are written as bare expressions.
func MarshalBlock(tree *doctree.Node) ([]byte, error) {
	if tree.Kind() != doctree.KindMapping {
		return nil, fmt.Errorf("block document is not a mapping")
	}

	file := hclwrite.NewEmptyFile()
	body := file.Body()
	first := true

	for _, section := range tree.Keys() {
		value, _ := tree.Get(section)
		if !first {
			body.AppendNewline()
		}
		first = false
		switch section {
		case "terraform":
			writeTerraformBlock(body, value)
		case "provider":
			writeProviderBlocks(body, value)
		case "variable":
			writeVariableBlocks(body, value)
		case "resource":
			writeResourceBlocks(body, value)
		case "output":
			writeOutputBlocks(body, value)
		default:
			if value.Kind() == doctree.KindMapping {
				writeGenericBlock(body, section, nil, value)
			} else {
				body.SetAttributeRaw(section, valueTokens(value))
			}
		}
	}

	return file.Bytes(), nil
}

func writeTerraformBlock(body *hclwrite.Body, config *doctree.Node) {
	block := body.AppendNewBlock("terraform", nil)
	required, ok := config.Get("required_providers")
	if !ok || required.Kind() != doctree.KindMapping {
		return
	}
	inner := block.Body().AppendNewBlock("required_providers", nil)
	for _, name := range required.Keys() {
		settings, _ := required.Get(name)
		inner.Body().SetAttributeRaw(name, valueTokens(settings))
	}
}

func writeProviderBlocks(body *hclwrite.Body, providers *doctree.Node) {
	for i, name := range providers.Keys() {
		if i > 0 {
			body.AppendNewline()
		}
		config, _ := providers.Get(name)
		block := body.AppendNewBlock("provider", []string{name})
		for _, key := range config.Keys() {
			value, _ := config.Get(key)
			// assume_role is a nested block in the provider schema.
			if key == "assume_role" && value.Kind() == doctree.KindMapping {
				inner := block.Body().AppendNewBlock("assume_role", nil)
				for _, k := range value.Keys() {
					v, _ := value.Get(k)
					inner.Body().SetAttributeRaw(k, valueTokens(v))
				}
				continue
			}
			block.Body().SetAttributeRaw(key, valueTokens(value))
		}
	}
}

func writeVariableBlocks(body *hclwrite.Body, variables *doctree.Node) {
	for i, name := range variables.Keys() {
		if i > 0 {
			body.AppendNewline()
		}
		config, _ := variables.Get(name)
		block := body.AppendNewBlock("variable", []string{name})
		for _, key := range config.Keys() {
			value, _ := config.Get(key)
			switch key {
			case "type":
				if s, ok := value.AsString(); ok {
					block.Body().SetAttributeRaw(key, rawTokens(s))
					continue
				}
				block.Body().SetAttributeRaw(key, valueTokens(value))
			case "validation":
				writeValidationBlock(block.Body(), value)
			default:
				block.Body().SetAttributeRaw(key, valueTokens(value))
			}
		}
	}
}

func writeValidationBlock(body *hclwrite.Body, validation *doctree.Node) {
	if validation.Kind() == doctree.KindSequence {
		for _, item := range validation.Items() {
			writeValidationBlock(body, item)
		}
		return
	}
	if validation.Kind() != doctree.KindMapping {
		return
	}
	block := body.AppendNewBlock("validation", nil)
	for _, key := range validation.Keys() {
		value, _ := validation.Get(key)
		if key == "condition" {
			if s, ok := value.AsString(); ok {
				block.Body().SetAttributeRaw(key, rawTokens(s))
				continue
			}
		}
		block.Body().SetAttributeRaw(key, valueTokens(value))
	}
}

func writeResourceBlocks(body *hclwrite.Body, resources *doctree.Node) {
	firstResource := true
	for _, blockType := range resources.Keys() {
		group, _ := resources.Get(blockType)
		if group.Kind() != doctree.KindMapping {
			continue
		}
		for _, name := range group.Keys() {
			if !firstResource {
				body.AppendNewline()
			}
			firstResource = false
			config, _ := group.Get(name)
			block := body.AppendNewBlock("resource", []string{blockType, name})
			for _, key := range config.Keys() {
				value, _ := config.Get(key)
				if key == "depends_on" && value.Kind() == doctree.KindSequence {
					block.Body().SetAttributeRaw(key, referenceListTokens(value))
					continue
				}
				block.Body().SetAttributeRaw(key, valueTokens(value))
			}
		}
	}
}

func writeOutputBlocks(body *hclwrite.Body, outputs *doctree.Node) {
	for i, name := range outputs.Keys() {
		if i > 0 {
			body.AppendNewline()
		}
		config, _ := outputs.Get(name)
		block := body.AppendNewBlock("output", []string{name})
		for _, key := range config.Keys() {
			value, _ := config.Get(key)
			block.Body().SetAttributeRaw(key, valueTokens(value))
		}
	}
}

func writeGenericBlock(body *hclwrite.Body, blockType string, labels []string, config *doctree.Node) {
	block := body.AppendNewBlock(blockType, labels)
	for _, key := range config.Keys() {
		value, _ := config.Get(key)
		block.Body().SetAttributeRaw(key, valueTokens(value))
	}
}

// valueTokens renders a node as HCL expression tokens.
func valueTokens(n *doctree.Node) hclwrite.Tokens {
	switch n.Kind() {
	case doctree.KindScalar:
		return scalarTokens(n)
	case doctree.KindSequence:
		tokens := hclwrite.Tokens{token(hclsyntax.TokenOBrack, "[")}
		for i, item := range n.Items() {
			if i > 0 {
				tokens = append(tokens, token(hclsyntax.TokenComma, ","))
			}
			tokens = append(tokens, valueTokens(item)...)
		}
		return append(tokens, token(hclsyntax.TokenCBrack, "]"))
	case doctree.KindMapping:
		tokens := hclwrite.Tokens{
			token(hclsyntax.TokenOBrace, "{"),
			token(hclsyntax.TokenNewline, "\n"),
		}
		for _, key := range n.Keys() {
			value, _ := n.Get(key)
			tokens = append(tokens, keyTokens(key)...)
			tokens = append(tokens, token(hclsyntax.TokenEqual, "="))
			tokens = append(tokens, valueTokens(value)...)
			tokens = append(tokens, token(hclsyntax.TokenNewline, "\n"))
		}
		return append(tokens, token(hclsyntax.TokenCBrace, "}"))
	}
	return hclwrite.Tokens{token(hclsyntax.TokenIdent, "null")}
}

func scalarTokens(n *doctree.Node) hclwrite.Tokens {
	switch v := n.Scalar().(type) {
	case nil:
		return hclwrite.Tokens{token(hclsyntax.TokenIdent, "null")}
	case bool:
		return hclwrite.Tokens{token(hclsyntax.TokenIdent, strconv.FormatBool(v))}
	case int64:
		return hclwrite.Tokens{token(hclsyntax.TokenNumberLit, strconv.FormatInt(v, 10))}
	case float64:
		return hclwrite.Tokens{token(hclsyntax.TokenNumberLit, strconv.FormatFloat(v, 'g', -1, 64))}
	case string:
		return stringTokens(v)
	}
	return hclwrite.Tokens{token(hclsyntax.TokenIdent, "null")}
}

// stringTokens quotes a string as a template. Interpolation markers are
// left alive rather than escaped to $${, since interpolation strings in
// the tree are expressions the output should evaluate.
func stringTokens(s string) hclwrite.Tokens {
	return hclwrite.Tokens{
		token(hclsyntax.TokenOQuote, `"`),
		token(hclsyntax.TokenQuotedLit, escapeQuotedLit(s)),
		token(hclsyntax.TokenCQuote, `"`),
	}
}

func escapeQuotedLit(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// referenceListTokens renders a dependency list with bare, unquoted
// reference expressions.
func referenceListTokens(n *doctree.Node) hclwrite.Tokens {
	tokens := hclwrite.Tokens{token(hclsyntax.TokenOBrack, "[")}
	for i, item := range n.Items() {
		if i > 0 {
			tokens = append(tokens, token(hclsyntax.TokenComma, ","))
		}
		if s, ok := item.AsString(); ok {
			tokens = append(tokens, rawTokens(s)...)
			continue
		}
		tokens = append(tokens, valueTokens(item)...)
	}
	return append(tokens, token(hclsyntax.TokenCBrack, "]"))
}

// rawTokens emits text verbatim as a single expression token.
func rawTokens(text string) hclwrite.Tokens {
	return hclwrite.Tokens{token(hclsyntax.TokenIdent, text)}
}

func keyTokens(key string) hclwrite.Tokens {
	if hclsyntax.ValidIdentifier(key) {
		return hclwrite.Tokens{token(hclsyntax.TokenIdent, key)}
	}
	return stringTokens(key)
}

func token(ty hclsyntax.TokenType, text string) *hclwrite.Token {
	return &hclwrite.Token{Type: ty, Bytes: []byte(text)}
}
