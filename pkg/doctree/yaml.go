// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package doctree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a tree. The yaml.v3 node API is
// used so that mapping key order survives.
func DecodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding YAML document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewMapping(), nil
	}
	return fromYAMLNode(doc.Content[0])
}

// yamlShortFormTags maps CloudFormation's YAML short-form intrinsic tags
// to the long-form function names they abbreviate.
var yamlShortFormTags = map[string]string{
	"!Ref":         "Ref",
	"!Condition":   "Condition",
	"!GetAtt":      "Fn::GetAtt",
	"!Sub":         "Fn::Sub",
	"!Join":        "Fn::Join",
	"!Select":      "Fn::Select",
	"!Split":       "Fn::Split",
	"!FindInMap":   "Fn::FindInMap",
	"!Base64":      "Fn::Base64",
	"!Cidr":        "Fn::Cidr",
	"!ImportValue": "Fn::ImportValue",
	"!GetAZs":      "Fn::GetAZs",
	"!If":          "Fn::If",
	"!Not":         "Fn::Not",
	"!And":         "Fn::And",
	"!Or":          "Fn::Or",
	"!Equals":      "Fn::Equals",
}

func fromYAMLNode(y *yaml.Node) (*Node, error) {
	// Local tags are CloudFormation short-form intrinsics. Recognized ones
	// expand to their long-form single-key mapping; anything else is a
	// decode error rather than a silently dropped tag.
	if strings.HasPrefix(y.Tag, "!") && !strings.HasPrefix(y.Tag, "!!") {
		return fromYAMLShortForm(y)
	}
	return fromYAMLStructure(y)
}

func fromYAMLShortForm(y *yaml.Node) (*Node, error) {
	name, ok := yamlShortFormTags[y.Tag]
	if !ok {
		return nil, fmt.Errorf("unrecognized YAML tag %s", y.Tag)
	}
	var args *Node
	if y.Kind == yaml.ScalarNode {
		args = String(y.Value)
	} else {
		var err error
		args, err = fromYAMLStructure(y)
		if err != nil {
			return nil, err
		}
	}
	call := NewMapping()
	call.Set(name, args)
	return call, nil
}

func fromYAMLStructure(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i].Value
			val, err := fromYAMLNode(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		s := NewSequence()
		for _, item := range y.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			s.Append(child)
		}
		return s, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(y)
	case yaml.AliasNode:
		return fromYAMLNode(y.Alias)
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", y.Kind)
}

func fromYAMLScalar(y *yaml.Node) (*Node, error) {
	switch y.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(y.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean scalar %q: %w", y.Value, err)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(y.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer scalar %q: %w", y.Value, err)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(y.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float scalar %q: %w", y.Value, err)
		}
		return Float(f), nil
	default:
		return String(y.Value), nil
	}
}

// EncodeYAML serializes the tree as YAML with 2-space indentation.
func EncodeYAML(n *Node) ([]byte, error) {
	y, err := toYAMLNode(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return nil, fmt.Errorf("encoding YAML document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML document: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(n *Node) (*yaml.Node, error) {
	switch n.Kind() {
	case KindMapping:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			cy, err := toYAMLNode(child)
			if err != nil {
				return nil, err
			}
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, cy)
		}
		return y, nil
	case KindSequence:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items() {
			cy, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			y.Content = append(y.Content, cy)
		}
		return y, nil
	case KindScalar:
		return toYAMLScalar(n)
	}
	return nil, fmt.Errorf("unsupported node kind %d", n.Kind())
}

func toYAMLScalar(n *Node) (*yaml.Node, error) {
	switch v := n.Scalar().(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		y := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		// Strings that would re-parse as another type need quoting.
		if looksAmbiguous(v) {
			y.Style = yaml.DoubleQuotedStyle
		}
		return y, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	}
	return nil, fmt.Errorf("unsupported scalar type %T", n.Scalar())
}

func looksAmbiguous(s string) bool {
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "null", "yes", "no", "on", "off", "~":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

// DecodeDeclarative parses a declarative-format document, selecting JSON
// or YAML by the first non-whitespace byte.
func DecodeDeclarative(data []byte) (*Node, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}
