// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package mapping

// Parameter/variable type-tag vocabularies. Lookups that miss fall back
// to the string type on both sides rather than failing.

var declarativeTypeTags = map[string]string{
	"string": "String",
	"number": "Number",
	"bool":   "String",
	"list":   "CommaDelimitedList",
	"map":    "String",
	"object": "String",
	"set":    "CommaDelimitedList",
}

var blockTypeTags = map[string]string{
	"String":                      "string",
	"Number":                      "number",
	"CommaDelimitedList":          "list(string)",
	"List<Number>":                "list(number)",
	"AWS::EC2::KeyPair::KeyName":  "string",
	"AWS::EC2::SecurityGroup::Id": "string",
	"AWS::EC2::Subnet::Id":        "string",
	"AWS::EC2::VPC::Id":           "string",
}

// DeclarativeTypeTag maps a Terraform variable type to a CloudFormation
// parameter type, defaulting to String.
func DeclarativeTypeTag(blockTag string) string {
	if tag, ok := declarativeTypeTags[blockTag]; ok {
		return tag
	}
	return "String"
}

// BlockTypeTag maps a CloudFormation parameter type to a Terraform
// variable type, defaulting to string.
func BlockTypeTag(declTag string) string {
	if tag, ok := blockTypeTags[declTag]; ok {
		return tag
	}
	return "string"
}
