// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
)

func call(name string, args *doctree.Node) *doctree.Node {
	m := doctree.NewMapping()
	m.Set(name, args)
	return m
}

func TestJoinToBlock(t *testing.T) {
	args := doctree.NewSequence(
		doctree.String("-"),
		doctree.NewSequence(doctree.String("a"), doctree.String("b")),
	)
	got := ToBlock(call("Fn::Join", args))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, `${join('-', ["a", "b"])}`, s)
}

func TestSubToBlockSimple(t *testing.T) {
	got := ToBlock(call("Fn::Sub", doctree.String("prefix-${Env}-suffix")))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "prefix-${var.Env}-suffix", s)
}

func TestSubToBlockWithMapping(t *testing.T) {
	values := doctree.NewMapping()
	values.Set("Env", doctree.String("dev"))
	values.Set("Zone", call("Ref", doctree.String("AWS::Region")))
	args := doctree.NewSequence(doctree.String("${Env}.${Zone}"), values)

	got := ToBlock(call("Fn::Sub", args))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "dev.${data.aws_region.current.name}", s)
}

func TestRefToBlock(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"environment", "${var.environment}"},
		{"AWS::Region", "${data.aws_region.current.name}"},
		{"AWS::AccountId", "${data.aws_caller_identity.current.account_id}"},
		{"AWS::StackName", "${terraform.workspace}"},
		// Unknown pseudo-parameters keep their own name.
		{"AWS::NoSuchFact", "${AWS::NoSuchFact}"},
	}
	for _, tt := range tests {
		got := ToBlock(call("Ref", doctree.String(tt.name)))
		s, ok := got.AsString()
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, s, tt.name)
	}
}

func TestGetAttToBlock(t *testing.T) {
	args := doctree.NewSequence(doctree.String("MyBucket"), doctree.String("Arn"))
	got := ToBlock(call("Fn::GetAtt", args))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "${aws_mybucket.arn}", s)

	// Dotted short form.
	got = ToBlock(call("Fn::GetAtt", doctree.String("MyBucket.Arn")))
	s, ok = got.AsString()
	require.True(t, ok)
	assert.Equal(t, "${aws_mybucket.arn}", s)
}

func TestSelectToBlock(t *testing.T) {
	args := doctree.NewSequence(
		doctree.Int(1),
		doctree.NewSequence(doctree.String("a"), doctree.String("b")),
	)
	got := ToBlock(call("Fn::Select", args))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, `${element(["a", "b"], 1)}`, s)
}

func TestConditionToBlock(t *testing.T) {
	got := ToBlock(call("Condition", doctree.String("IsProd")))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "${var.IsProd}", s)
}

func TestToBlockUnrecognizedIsIdentity(t *testing.T) {
	// A single-key mapping with an unknown key is plain data.
	plain := call("Fn::ImportValue", doctree.String("shared"))
	got := ToBlock(plain)
	assert.True(t, plain.Equal(got))

	// Multi-key mappings recurse but keep their shape and order.
	multi := doctree.NewMapping()
	multi.Set("Second", doctree.String("2"))
	multi.Set("First", call("Ref", doctree.String("x")))
	got = ToBlock(multi)
	assert.Equal(t, []string{"Second", "First"}, got.Keys())
	first, _ := got.Get("First")
	s, _ := first.AsString()
	assert.Equal(t, "${var.x}", s)
}

func TestToBlockNestedInsideStructures(t *testing.T) {
	inner := call("Ref", doctree.String("bucket_name"))
	seq := doctree.NewSequence(doctree.String("plain"), inner)
	got := ToBlock(seq)
	require.Equal(t, 2, got.Len())
	s, _ := got.Items()[1].AsString()
	assert.Equal(t, "${var.bucket_name}", s)
}

func TestJoinToDeclarative(t *testing.T) {
	got := ToDeclarative(doctree.String(`${join("-", ["a", "b"])}`))
	require.Equal(t, doctree.KindMapping, got.Kind())
	args, ok := got.Get("Fn::Join")
	require.True(t, ok)
	require.Equal(t, 2, args.Len())
	delim, _ := args.Items()[0].AsString()
	assert.Equal(t, "-", delim)
	assert.Equal(t, 2, args.Items()[1].Len())
}

func TestJoinToDeclarativeUnparseableListPassesThrough(t *testing.T) {
	src := `${join("-", local.names)}`
	got := ToDeclarative(doctree.String(src))
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, src, s)
}

func TestFormatToDeclarative(t *testing.T) {
	got := ToDeclarative(doctree.String(`${format("%s-suffix", var.name)}`))
	require.Equal(t, doctree.KindMapping, got.Kind())
	_, ok := got.Get("Fn::Sub")
	assert.True(t, ok)
}

func TestPseudoAccessorsToDeclarative(t *testing.T) {
	got := ToDeclarative(doctree.String("${data.aws_region.current.name}"))
	ref, ok := got.Get("Ref")
	require.True(t, ok)
	s, _ := ref.AsString()
	assert.Equal(t, "AWS::Region", s)

	got = ToDeclarative(doctree.String("${data.aws_caller_identity.current.account_id}"))
	ref, ok = got.Get("Ref")
	require.True(t, ok)
	s, _ = ref.AsString()
	assert.Equal(t, "AWS::AccountId", s)

	// The bare attribute name works without the data-source prefix too.
	got = ToDeclarative(doctree.String("${local.aws_account_id}"))
	ref, ok = got.Get("Ref")
	require.True(t, ok)
	s, _ = ref.AsString()
	assert.Equal(t, "AWS::AccountId", s)
}

func TestToDeclarativeIdentity(t *testing.T) {
	// No interpolation marker: untouched, including escaping.
	plain := doctree.String(`a "quoted" value with $ and {braces}`)
	assert.True(t, plain.Equal(ToDeclarative(plain)))

	// Interpolation with no recognized fragment: untouched.
	varOnly := doctree.String("${var.environment}")
	assert.True(t, varOnly.Equal(ToDeclarative(varOnly)))

	// Non-string scalars: untouched.
	num := doctree.Int(42)
	assert.True(t, num.Equal(ToDeclarative(num)))
}

func TestToDeclarativePreservesOrder(t *testing.T) {
	m := doctree.NewMapping()
	m.Set("z", doctree.String("${var.one}"))
	m.Set("a", doctree.NewSequence(doctree.String("x"), doctree.String("y")))
	got := ToDeclarative(m)
	assert.Equal(t, []string{"z", "a"}, got.Keys())
}
