// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package mapping

// pseudoParameterAccessors maps CloudFormation pseudo-parameters to the
// Terraform expression that resolves the same environment fact.
var pseudoParameterAccessors = map[string]string{
	"AWS::Region":    "data.aws_region.current.name",
	"AWS::AccountId": "data.aws_caller_identity.current.account_id",
	"AWS::StackName": "terraform.workspace",
}

// PseudoParameterAccessor returns the Terraform accessor expression for
// a pseudo-parameter reference.
func PseudoParameterAccessor(name string) (string, bool) {
	accessor, ok := pseudoParameterAccessors[name]
	return accessor, ok
}
