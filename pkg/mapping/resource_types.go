// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0

// Package mapping holds the static catalogs used during conversion:
// resource type names, property names, parameter/variable type tags, and
// pseudo-parameter accessors. All tables are built once at package init
// and only ever read afterwards, so they are safe for concurrent use.
// Reverse tables are derived mechanically from the forward declarations
// so the two directions cannot drift apart.
package mapping

import "strings"

// declarativeToBlockTypes maps CloudFormation resource types to their
// Terraform counterparts. The reverse table is derived in init.
var declarativeToBlockTypes = map[string]string{
	// Compute
	"AWS::EC2::Instance":         "aws_instance",
	"AWS::EC2::Volume":           "aws_ebs_volume",
	"AWS::EC2::VPC":              "aws_vpc",
	"AWS::EC2::Subnet":           "aws_subnet",
	"AWS::EC2::SecurityGroup":    "aws_security_group",
	"AWS::EC2::RouteTable":       "aws_route_table",
	"AWS::EC2::NetworkInterface": "aws_network_interface",

	// Storage
	"AWS::S3::Bucket":       "aws_s3_bucket",
	"AWS::S3::BucketPolicy": "aws_s3_bucket_policy",
	"AWS::EFS::FileSystem":  "aws_efs_file_system",

	// Database
	"AWS::RDS::DBInstance": "aws_db_instance",
	"AWS::RDS::DBCluster":  "aws_rds_cluster",
	"AWS::DynamoDB::Table": "aws_dynamodb_table",

	// Networking
	"AWS::ElasticLoadBalancingV2::LoadBalancer": "aws_lb",
	"AWS::ElasticLoadBalancingV2::TargetGroup":  "aws_lb_target_group",
	"AWS::ElasticLoadBalancingV2::Listener":     "aws_lb_listener",

	// Identity
	"AWS::IAM::Role":   "aws_iam_role",
	"AWS::IAM::Policy": "aws_iam_policy",
	"AWS::IAM::User":   "aws_iam_user",
	"AWS::IAM::Group":  "aws_iam_group",

	// Serverless
	"AWS::Lambda::Function":     "aws_lambda_function",
	"AWS::ApiGateway::RestApi":  "aws_api_gateway_rest_api",
	"AWS::ApiGateway::Resource": "aws_api_gateway_resource",
	"AWS::ApiGateway::Method":   "aws_api_gateway_method",

	// Containers
	"AWS::ECS::Cluster":        "aws_ecs_cluster",
	"AWS::ECS::Service":        "aws_ecs_service",
	"AWS::ECS::TaskDefinition": "aws_ecs_task_definition",

	// Monitoring
	"AWS::CloudWatch::Alarm":     "aws_cloudwatch_metric_alarm",
	"AWS::CloudWatch::Dashboard": "aws_cloudwatch_dashboard",
	"AWS::SNS::Topic":            "aws_sns_topic",
}

var blockToDeclarativeTypes map[string]string

func init() {
	blockToDeclarativeTypes = make(map[string]string, len(declarativeToBlockTypes))
	for declType, blockType := range declarativeToBlockTypes {
		blockToDeclarativeTypes[blockType] = declType
	}
}

// BlockResourceType returns the Terraform type for a CloudFormation
// type. exact is false when no catalog entry matched and the name was
// derived by the lower-and-join convention instead.
func BlockResourceType(declType string) (name string, exact bool) {
	if blockType, ok := declarativeToBlockTypes[declType]; ok {
		return blockType, true
	}
	segments := strings.Split(declType, "::")
	for i, seg := range segments {
		segments[i] = strings.ToLower(seg)
	}
	return strings.Join(segments, "_"), false
}

// DeclarativeResourceType returns the CloudFormation type for a
// Terraform type. exact is false when the name was derived by
// title-casing the second and third underscore segments.
func DeclarativeResourceType(blockType string) (name string, exact bool) {
	if declType, ok := blockToDeclarativeTypes[blockType]; ok {
		return declType, true
	}
	segments := strings.Split(blockType, "_")
	service := blockType
	resource := blockType
	switch {
	case len(segments) >= 3:
		service = segments[1]
		resource = segments[2]
	case len(segments) == 2:
		service = segments[1]
		resource = segments[1]
	}
	return "AWS::" + titleSegment(service) + "::" + titleSegment(resource), false
}
