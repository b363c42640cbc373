// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON parses JSON into a document tree, preserving object key
// order. Numbers decode to int64 when they have no fractional part and
// float64 otherwise.
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON document: %w", err)
	}

	// Anything after the first value is a malformed document.
	if dec.More() {
		return nil, fmt.Errorf("decoding JSON document: trailing content after top-level value")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			s := NewSequence()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				s.Append(item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberNode(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func numberNode(num json.Number) *Node {
	if !strings.ContainsAny(num.String(), ".eE") {
		if i, err := num.Int64(); err == nil {
			return Int(i)
		}
	}
	f, err := num.Float64()
	if err != nil {
		// json.Number always came from the decoder, so this is
		// unreachable for well-formed input.
		return String(num.String())
	}
	return Float(f)
}

// EncodeJSON serializes the tree as 2-space-indented JSON. Mapping keys
// are emitted in tree order.
func EncodeJSON(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, n, 0, true); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeJSONCompact serializes the tree on a single line with ", " and
// ": " separators, the layout recognized by the expression rewriter's
// embedded-list patterns.
func EncodeJSONCompact(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, n, 0, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeJSON(buf *bytes.Buffer, n *Node, depth int, indent bool) error {
	switch n.Kind() {
	case KindScalar:
		raw, err := json.Marshal(n.Scalar())
		if err != nil {
			return err
		}
		buf.Write(raw)
	case KindSequence:
		if n.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range n.Items() {
			if i > 0 {
				buf.WriteByte(',')
				if !indent {
					buf.WriteByte(' ')
				}
			}
			if indent {
				buf.WriteByte('\n')
				writeIndent(buf, depth+1)
			}
			if err := encodeJSON(buf, item, depth+1, indent); err != nil {
				return err
			}
		}
		if indent {
			buf.WriteByte('\n')
			writeIndent(buf, depth)
		}
		buf.WriteByte(']')
	case KindMapping:
		if n.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range n.Keys() {
			if i > 0 {
				buf.WriteByte(',')
				if !indent {
					buf.WriteByte(' ')
				}
			}
			if indent {
				buf.WriteByte('\n')
				writeIndent(buf, depth+1)
			}
			rawKey, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(rawKey)
			buf.WriteString(": ")
			child, _ := n.Get(key)
			if err := encodeJSON(buf, child, depth+1, indent); err != nil {
				return err
			}
		}
		if indent {
			buf.WriteByte('\n')
			writeIndent(buf, depth)
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
