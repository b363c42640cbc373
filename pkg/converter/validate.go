// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

// Validate checks that source parses as the declared format. It is a
// syntax check only: no section or resource-type verification happens
// here. A failure is returned as a ValidationError wrapping the parse
// error.
func (c *Converter) Validate(source string, format Format) error {
	switch format {
	case FormatDeclarative:
		if _, err := doctree.DecodeDeclarative([]byte(source)); err != nil {
			return &ValidationError{Format: format, Err: err}
		}
		return nil
	case FormatBlock:
		parser := hclparse.NewParser()
		_, diags := parser.ParseHCL([]byte(source), "input.tf")
		if diags.HasErrors() {
			return &ValidationError{Format: format, Err: diags}
		}
		return nil
	default:
		return &ValidationError{Format: format, Err: fmt.Errorf("unknown format %q", format)}
	}
}
