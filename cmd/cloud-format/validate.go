// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brokosz/cloud-format-converter/pkg/converter"
)

var validateTemplateType string

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Check that a template parses as the given format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args[0])
		if err != nil {
			return err
		}

		var format converter.Format
		switch validateTemplateType {
		case "terraform":
			format = converter.FormatBlock
		case "cloudformation":
			format = converter.FormatDeclarative
		default:
			return fmt.Errorf("invalid --type %q: must be 'terraform' or 'cloudformation'", validateTemplateType)
		}

		if err := converter.New().Validate(content, format); err != nil {
			return err
		}
		cmd.Println("Validation successful!")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateTemplateType, "type", "",
		"template type to validate against: 'terraform' or 'cloudformation'")
	_ = validateCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(validateCmd)
}
