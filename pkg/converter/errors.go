// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import "fmt"

// Direction tags a ConversionError with the conversion that failed.
type Direction string

const (
	DirectionToDeclarative Direction = "terraform to cloudformation"
	DirectionToBlock       Direction = "cloudformation to terraform"
)

// ConversionError wraps any failure raised while converting a document.
// The two public entry points never return partial output: either the
// whole document converts, or the caller gets one of these.
type ConversionError struct {
	Direction Direction
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("error converting %s: %v", e.Direction, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ValidationError wraps a parse failure surfaced by Validate.
type ValidationError struct {
	Format Format
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s format: %v", e.Format, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
