// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stdioPath selects standard input or output in place of a file.
const stdioPath = "-"

func readInput(path string) (string, error) {
	if path == stdioPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path string, content []byte) error {
	if path == stdioPath {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// detectSourceFormat infers a file's format from its extension:
// "tf" for the block language, "cf" for declarative templates.
func detectSourceFormat(path string) (string, error) {
	if path == stdioPath {
		return "", fmt.Errorf("cannot detect format from stdin, please specify --format")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tf", ".tfvars":
		return "tf", nil
	case ".yaml", ".yml", ".json":
		return "cf", nil
	default:
		return "", fmt.Errorf("cannot detect format from extension: %s", filepath.Ext(path))
	}
}
