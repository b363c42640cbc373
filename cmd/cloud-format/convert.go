// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brokosz/cloud-format-converter/pkg/converter"
	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

var (
	convertTargetFormat string
	convertOutputFormat string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a template between formats",
	Long: `Convert a template between the Terraform block language and
CloudFormation. Input and output of '-' mean stdin and stdout. When
--format is omitted the target is inferred from the input file
extension (.tf/.tfvars sources convert to CloudFormation;
.yaml/.yml/.json sources convert to Terraform).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		if convertOutputFormat != "json" && convertOutputFormat != "yaml" {
			return fmt.Errorf("invalid --output-format %q: must be 'json' or 'yaml'", convertOutputFormat)
		}

		target := convertTargetFormat
		if target == "" {
			source, err := detectSourceFormat(inputPath)
			if err != nil {
				return err
			}
			if source == "tf" {
				target = "cf"
			} else {
				target = "tf"
			}
		}
		if target != "tf" && target != "cf" {
			return fmt.Errorf("invalid --format %q: must be 'tf' or 'cf'", target)
		}

		content, err := readInput(inputPath)
		if err != nil {
			return err
		}

		eng := converter.New()
		var rendered []byte
		switch target {
		case "cf":
			slog.Debug("converting block format to declarative", "input", inputPath)
			tree, err := eng.ToDeclarative(content)
			if err != nil {
				return err
			}
			if convertOutputFormat == "json" {
				rendered, err = doctree.EncodeJSON(tree)
			} else {
				rendered, err = doctree.EncodeYAML(tree)
			}
			if err != nil {
				return err
			}
		case "tf":
			slog.Debug("converting declarative to block format", "input", inputPath)
			tree, err := eng.ToBlockFormat(content)
			if err != nil {
				return err
			}
			rendered, err = converter.MarshalBlock(tree)
			if err != nil {
				return err
			}
		}

		return writeOutput(outputPath, rendered)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTargetFormat, "format", "",
		"target format: 'tf' (Terraform) or 'cf' (CloudFormation); inferred from the input extension when omitted")
	convertCmd.Flags().StringVar(&convertOutputFormat, "output-format", "yaml",
		"output serialization for CloudFormation: 'json' or 'yaml'")
	rootCmd.AddCommand(convertCmd)
}
