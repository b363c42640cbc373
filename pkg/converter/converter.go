// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0

// Package converter implements the conversion engine between the
// block-structured configuration language (Terraform HCL) and the
// declarative template format (CloudFormation JSON/YAML). Both formats
// are parsed into the generic tree from pkg/doctree; the structural
// transformation walks that tree section by section, delegating type
// names to pkg/mapping and embedded function expressions to pkg/expr.
package converter

const (
	defaultTemplateDescription = "Converted from Terraform"
	defaultProviderVersion     = "~> 4.0"

	templateFormatVersion = "2010-09-09"
	providerSource        = "hashicorp/aws"

	// Reserved names for the lossy provider-configuration side channel:
	// the region rides in a well-known mapping entry and the
	// assumed-role ARN in a reserved parameter.
	regionMapName      = "AWSRegionMap"
	assumeRoleArnParam = "AssumeRoleArn"
)

// Converter is the conversion engine. A Converter holds only immutable
// configuration, so one instance may be shared across goroutines; each
// conversion call is independent.
type Converter struct {
	templateDescription string
	providerVersion     string
}

var _ FormatConverter = (*Converter)(nil)

// New creates a Converter with the given options applied.
func New(opts ...Option) *Converter {
	c := &Converter{
		templateDescription: defaultTemplateDescription,
		providerVersion:     defaultProviderVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTemplateDescription implements ConverterOptions.
func (c *Converter) SetTemplateDescription(description string) {
	c.templateDescription = description
}

// SetProviderVersion implements ConverterOptions.
func (c *Converter) SetProviderVersion(constraint string) {
	c.providerVersion = constraint
}
