// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0

// cloud-format converts infrastructure templates between Terraform HCL
// and CloudFormation JSON/YAML.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:           "cloud-format",
	Short:         "Convert between Terraform and CloudFormation formats",
	Long:          longAppDescription,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevelFlag)
	},
}

var longAppDescription = strings.TrimSpace(`
cloud-format converts infrastructure-as-code templates between the
Terraform block language and the CloudFormation template format,
translating resource types, properties, intrinsic functions, variables,
outputs, and dependencies in both directions.
`)

func setupLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn",
		"logging level: 'debug', 'info', 'warn', or 'error'")
}
