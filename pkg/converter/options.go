// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

type ConverterOptions interface {
	SetTemplateDescription(description string)
	SetProviderVersion(constraint string)
}

type Option func(c ConverterOptions)

// WithTemplateDescription overrides the Description written into
// generated declarative templates.
func WithTemplateDescription(description string) Option {
	return func(c ConverterOptions) {
		c.SetTemplateDescription(description)
	}
}

// WithProviderVersion overrides the provider version constraint written
// into the required_providers block of generated block-format documents.
func WithProviderVersion(constraint string) Option {
	return func(c ConverterOptions) {
		c.SetProviderVersion(constraint)
	}
}
