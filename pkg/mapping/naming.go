// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package mapping

import (
	"strings"
	"unicode"
)

// titleSegment upper-cases the first rune of a lower-cased identifier
// segment ("s3" becomes "S3", "lambda" becomes "Lambda").
func titleSegment(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// snakeToPascal converts an underscore-separated name to PascalCase:
// "bucket_name" becomes "BucketName".
func snakeToPascal(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(titleSegment(part))
	}
	return b.String()
}

// pascalToSnake converts a PascalCase name to underscore-separated
// lower case: "BucketName" becomes "bucket_name", "ImageId" becomes
// "image_id". A run of upper-case letters stays a single segment, with
// the final letter starting the next segment when a lower-case letter
// follows ("DBSubnetGroup" becomes "db_subnet_group").
func pascalToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1]) && unicode.IsLetter(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
