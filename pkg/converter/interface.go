// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import "github.com/brokosz/cloud-format-converter/pkg/doctree"

// FormatConverter converts templates between the block-structured
// configuration language and the declarative template format. Both
// conversion methods return the target document as a generic tree; the
// caller picks a serializer (MarshalBlock, doctree.EncodeJSON, or
// doctree.EncodeYAML) to emit text.
type FormatConverter interface {
	ToDeclarative(blockSource string) (*doctree.Node, error)
	ToBlockFormat(declarativeSource string) (*doctree.Node, error)
	Validate(source string, format Format) error
}
