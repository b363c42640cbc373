// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

// Format labels the two template languages the engine converts between.
type Format string

const (
	// FormatBlock is the block-structured configuration language
	// (Terraform HCL).
	FormatBlock Format = "block"

	// FormatDeclarative is the JSON/YAML declarative template format
	// (CloudFormation).
	FormatDeclarative Format = "declarative"
)
