// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceTypeRoundTrip(t *testing.T) {
	// Every catalog entry must map back to itself through the derived
	// reverse table.
	for declType, blockType := range declarativeToBlockTypes {
		gotBlock, exact := BlockResourceType(declType)
		assert.True(t, exact, "missing forward entry for %s", declType)
		assert.Equal(t, blockType, gotBlock)

		gotDecl, exact := DeclarativeResourceType(blockType)
		assert.True(t, exact, "missing reverse entry for %s", blockType)
		assert.Equal(t, declType, gotDecl)
	}
}

func TestBlockResourceTypeFallback(t *testing.T) {
	got, exact := BlockResourceType("AWS::Kinesis::Stream")
	assert.False(t, exact)
	assert.Equal(t, "aws_kinesis_stream", got)
}

func TestDeclarativeResourceTypeFallback(t *testing.T) {
	tests := []struct {
		blockType string
		want      string
	}{
		{"aws_kinesis_stream", "AWS::Kinesis::Stream"},
		{"aws_sqs_queue", "AWS::Sqs::Queue"},
		// Short names never panic; the last segment is reused.
		{"aws_eip", "AWS::Eip::Eip"},
	}
	for _, tt := range tests {
		got, exact := DeclarativeResourceType(tt.blockType)
		assert.False(t, exact)
		assert.Equal(t, tt.want, got, "fallback for %s", tt.blockType)
	}
}

func TestPropertyNames(t *testing.T) {
	assert.Equal(t, "BucketName", DeclarativePropertyName("aws_s3_bucket", "bucket"))
	assert.Equal(t, "bucket", BlockPropertyName("AWS::S3::Bucket", "BucketName"))

	// Unmapped names fall back to case conversion.
	assert.Equal(t, "Tags", DeclarativePropertyName("aws_s3_bucket", "tags"))
	assert.Equal(t, "FunctionName", DeclarativePropertyName("aws_lambda_function", "function_name"))
	assert.Equal(t, "function_name", BlockPropertyName("AWS::Lambda::Function", "FunctionName"))
	assert.Equal(t, "image_id", BlockPropertyName("AWS::Unknown::Thing", "ImageId"))
	assert.Equal(t, "db_subnet_group", BlockPropertyName("AWS::Unknown::Thing", "DBSubnetGroup"))
}

func TestTypeTags(t *testing.T) {
	assert.Equal(t, "String", DeclarativeTypeTag("string"))
	assert.Equal(t, "String", DeclarativeTypeTag("bool"))
	assert.Equal(t, "CommaDelimitedList", DeclarativeTypeTag("list"))
	assert.Equal(t, "String", DeclarativeTypeTag("list(string)"), "unknown tags default to String")

	assert.Equal(t, "string", BlockTypeTag("String"))
	assert.Equal(t, "list(string)", BlockTypeTag("CommaDelimitedList"))
	assert.Equal(t, "string", BlockTypeTag("AWS::EC2::VPC::Id"))
	assert.Equal(t, "string", BlockTypeTag("SomethingNew"), "unknown tags default to string")
}

func TestPseudoParameterAccessor(t *testing.T) {
	accessor, ok := PseudoParameterAccessor("AWS::Region")
	assert.True(t, ok)
	assert.Equal(t, "data.aws_region.current.name", accessor)

	_, ok = PseudoParameterAccessor("AWS::NoSuchThing")
	assert.False(t, ok)
}
