// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingPreservesInsertionOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zebra", String("z"))
	m.Set("alpha", String("a"))
	m.Set("middle", String("m"))

	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())

	// Replacing keeps the original position.
	m.Set("alpha", String("a2"))
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())

	m.Delete("alpha")
	assert.Equal(t, []string{"zebra", "middle"}, m.Keys())
}

func TestDecodeJSONKeyOrder(t *testing.T) {
	src := `{"Resources": {"B": 1, "A": 2}, "Outputs": {}, "list": [1, 2.5, true, null, "x"]}`

	tree, err := DecodeJSON([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Resources", "Outputs", "list"}, tree.Keys())
	resources, ok := tree.Get("Resources")
	require.True(t, ok)
	assert.Equal(t, []string{"B", "A"}, resources.Keys())

	list, ok := tree.Get("list")
	require.True(t, ok)
	require.Equal(t, 5, list.Len())
	assert.Equal(t, int64(1), list.Items()[0].Scalar())
	assert.Equal(t, 2.5, list.Items()[1].Scalar())
	assert.Equal(t, true, list.Items()[2].Scalar())
	assert.Nil(t, list.Items()[3].Scalar())
	assert.Equal(t, "x", list.Items()[4].Scalar())
}

func TestDecodeJSONRejectsMalformed(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"unterminated": `))
	assert.Error(t, err)

	_, err = DecodeJSON([]byte(`{} trailing`))
	assert.Error(t, err)
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	src := `{"b": {"x": [1, 2]}, "a": "text"}`
	tree, err := DecodeJSON([]byte(src))
	require.NoError(t, err)

	out, err := EncodeJSON(tree)
	require.NoError(t, err)

	back, err := DecodeJSON(out)
	require.NoError(t, err)
	assert.True(t, tree.Equal(back))
}

func TestEncodeJSONDeterministic(t *testing.T) {
	tree := NewMapping()
	inner := NewMapping()
	inner.Set("second", Int(2))
	inner.Set("first", Int(1))
	tree.Set("outer", inner)
	tree.Set("items", NewSequence(String("a"), String("b")))

	one, err := EncodeJSON(tree)
	require.NoError(t, err)
	two, err := EncodeJSON(tree)
	require.NoError(t, err)
	assert.Equal(t, one, two)
}

func TestEncodeJSONCompact(t *testing.T) {
	seq := NewSequence(String("a"), String("b"), Int(3))
	out, err := EncodeJSONCompact(seq)
	require.NoError(t, err)
	assert.Equal(t, `["a", "b", 3]`, out)
}

func TestDecodeYAMLKeyOrder(t *testing.T) {
	src := `
Resources:
  MyBucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: my-test-bucket
Outputs:
  BucketArn:
    Value: out
`
	tree, err := DecodeYAML([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Resources", "Outputs"}, tree.Keys())
	bucket, ok := tree.Get("Resources")
	require.True(t, ok)
	my, ok := bucket.Get("MyBucket")
	require.True(t, ok)
	assert.Equal(t, []string{"Type", "Properties"}, my.Keys())
}

func TestYAMLScalarTypes(t *testing.T) {
	src := "count: 3\nratio: 1.5\nenabled: true\nname: dev\nnothing: null\n"
	tree, err := DecodeYAML([]byte(src))
	require.NoError(t, err)

	count, _ := tree.Get("count")
	assert.Equal(t, int64(3), count.Scalar())
	ratio, _ := tree.Get("ratio")
	assert.Equal(t, 1.5, ratio.Scalar())
	enabled, _ := tree.Get("enabled")
	assert.Equal(t, true, enabled.Scalar())
	name, _ := tree.Get("name")
	assert.Equal(t, "dev", name.Scalar())
	nothing, _ := tree.Get("nothing")
	assert.Nil(t, nothing.Scalar())
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	tree := NewMapping()
	tree.Set("Description", String("Converted from Terraform"))
	props := NewMapping()
	props.Set("BucketName", String("my-test-bucket"))
	props.Set("Versioned", Bool(true))
	tree.Set("Properties", props)
	tree.Set("Tags", NewSequence(String("a"), String("true")))

	out, err := EncodeYAML(tree)
	require.NoError(t, err)

	back, err := DecodeYAML(out)
	require.NoError(t, err)
	assert.True(t, tree.Equal(back), "round trip changed the tree:\n%s", out)
}

func TestDecodeYAMLShortFormIntrinsics(t *testing.T) {
	src := `
Outputs:
  Ref:
    Value: !Ref environment
  Att:
    Value: !GetAtt MyBucket.Arn
  Joined:
    Value: !Join ["-", [a, b]]
`
	tree, err := DecodeYAML([]byte(src))
	require.NoError(t, err)
	outputs, _ := tree.Get("Outputs")

	refOut, _ := outputs.Get("Ref")
	value, _ := refOut.Get("Value")
	require.Equal(t, KindMapping, value.Kind())
	ref, ok := value.Get("Ref")
	require.True(t, ok)
	assert.Equal(t, "environment", ref.Scalar())

	attOut, _ := outputs.Get("Att")
	value, _ = attOut.Get("Value")
	att, ok := value.Get("Fn::GetAtt")
	require.True(t, ok)
	assert.Equal(t, "MyBucket.Arn", att.Scalar())

	joinOut, _ := outputs.Get("Joined")
	value, _ = joinOut.Get("Value")
	join, ok := value.Get("Fn::Join")
	require.True(t, ok)
	require.Equal(t, 2, join.Len())
	assert.Equal(t, "-", join.Items()[0].Scalar())
	assert.Equal(t, 2, join.Items()[1].Len())
}

func TestDecodeYAMLRejectsUnknownTag(t *testing.T) {
	_, err := DecodeYAML([]byte("Value: !NoSuchFunction x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "!NoSuchFunction")
}

func TestDecodeDeclarativeSniffing(t *testing.T) {
	jsonTree, err := DecodeDeclarative([]byte(`  {"a": 1}`))
	require.NoError(t, err)
	a, ok := jsonTree.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.Scalar())

	yamlTree, err := DecodeDeclarative([]byte("a: 1\n"))
	require.NoError(t, err)
	a, ok = yamlTree.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.Scalar())
}

func TestDecodeDeclarativeUnterminatedMapping(t *testing.T) {
	_, err := DecodeDeclarative([]byte(`{"Resources": {"MyBucket": `))
	assert.Error(t, err)
}
