// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package mapping

// blockPropertyNames maps Terraform argument names to CloudFormation
// property names, per resource type, for the arguments whose names do
// not follow the mechanical snake/Pascal correspondence. Everything not
// listed here falls back to case conversion.
var blockPropertyNames = map[string]map[string]string{
	"aws_s3_bucket": {
		"bucket": "BucketName",
		"acl":    "AccessControl",
	},
	"aws_instance": {
		"ami":           "ImageId",
		"instance_type": "InstanceType",
	},
	"aws_lambda_function": {
		"memory_size": "MemorySize",
	},
	"aws_db_instance": {
		"allocated_storage": "AllocatedStorage",
		"engine":            "Engine",
		"instance_class":    "DBInstanceClass",
		"name":              "DBName",
		"username":          "MasterUsername",
		"password":          "MasterUserPassword",
	},
	"aws_dynamodb_table": {
		"name":     "TableName",
		"hash_key": "HashKeyElement",
	},
	"aws_iam_role": {
		"name":               "RoleName",
		"assume_role_policy": "AssumeRolePolicyDocument",
	},
	"aws_iam_policy": {
		"name":   "PolicyName",
		"policy": "PolicyDocument",
	},
	"aws_sns_topic": {
		"name": "TopicName",
	},
	"aws_ecs_cluster": {
		"name": "ClusterName",
	},
	"aws_lb": {
		"name": "Name",
	},
}

// declarativePropertyNames is the reverse of blockPropertyNames, keyed
// by the CloudFormation resource type. Derived at init.
var declarativePropertyNames map[string]map[string]string

func init() {
	declarativePropertyNames = make(map[string]map[string]string, len(blockPropertyNames))
	for blockType, props := range blockPropertyNames {
		declType, _ := DeclarativeResourceType(blockType)
		reversed := make(map[string]string, len(props))
		for blockName, declName := range props {
			reversed[declName] = blockName
		}
		declarativePropertyNames[declType] = reversed
	}
}

// DeclarativePropertyName returns the CloudFormation property name for
// a Terraform argument of the given resource type.
func DeclarativePropertyName(blockType, argName string) string {
	if props, ok := blockPropertyNames[blockType]; ok {
		if declName, ok := props[argName]; ok {
			return declName
		}
	}
	return snakeToPascal(argName)
}

// BlockPropertyName returns the Terraform argument name for a
// CloudFormation property of the given resource type.
func BlockPropertyName(declType, propName string) string {
	if props, ok := declarativePropertyNames[declType]; ok {
		if argName, ok := props[propName]; ok {
			return argName
		}
	}
	return pascalToSnake(propName)
}
