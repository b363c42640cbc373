// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import (
	"fmt"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
	"github.com/brokosz/cloud-format-converter/pkg/expr"
	"github.com/brokosz/cloud-format-converter/pkg/mapping"
)

// ToDeclarative converts block-format source text into a declarative
// template tree. Any failure is reported as a single ConversionError;
// no partial document is returned.
func (c *Converter) ToDeclarative(blockSource string) (*doctree.Node, error) {
	tf, err := decodeBlockDocument(blockSource)
	if err != nil {
		return nil, &ConversionError{Direction: DirectionToDeclarative, Err: err}
	}

	template := doctree.NewMapping()
	template.Set("AWSTemplateFormatVersion", doctree.String(templateFormatVersion))
	template.Set("Description", doctree.String(c.templateDescription))
	template.Set("Parameters", doctree.NewMapping())
	template.Set("Conditions", doctree.NewMapping())
	template.Set("Resources", doctree.NewMapping())
	template.Set("Outputs", doctree.NewMapping())

	if variables, ok := tf.Get("variable"); ok {
		params, _ := template.Get("Parameters")
		if err := convertVariablesToParameters(variables, params); err != nil {
			return nil, &ConversionError{Direction: DirectionToDeclarative, Err: err}
		}
	}

	if resources, ok := tf.Get("resource"); ok {
		out, _ := template.Get("Resources")
		if err := convertBlockResources(resources, out); err != nil {
			return nil, &ConversionError{Direction: DirectionToDeclarative, Err: err}
		}
	}

	if outputs, ok := tf.Get("output"); ok {
		out, _ := template.Get("Outputs")
		convertBlockOutputs(outputs, out)
	}

	if providers, ok := tf.Get("provider"); ok {
		stashProviderConfig(providers, template)
	}

	dropEmptySections(template)
	return template, nil
}

func convertVariablesToParameters(variables, params *doctree.Node) error {
	if variables.Kind() != doctree.KindMapping {
		return fmt.Errorf("variable section is not a mapping")
	}
	for _, name := range variables.Keys() {
		config, _ := variables.Get(name)
		if config.Kind() != doctree.KindMapping {
			return fmt.Errorf("variable %q is not a mapping", name)
		}

		param := doctree.NewMapping()

		typeTag := "string"
		if t, ok := config.Get("type"); ok {
			if s, sok := t.AsString(); sok {
				typeTag = s
			}
		}
		param.Set("Type", doctree.String(mapping.DeclarativeTypeTag(typeTag)))

		description := "Parameter for " + name
		if d, ok := config.Get("description"); ok {
			if s, sok := d.AsString(); sok {
				description = s
			}
		}
		param.Set("Description", doctree.String(description))

		if def, ok := config.Get("default"); ok {
			param.Set("Default", def)
		}

		if validation, ok := config.Get("validation"); ok {
			// Repeated validation blocks decode as a sequence; only the
			// first carries constraints the declarative format can hold.
			if validation.Kind() == doctree.KindSequence && validation.Len() > 0 {
				validation = validation.Items()[0]
			}
			if condition, ok := validation.Get("condition"); ok {
				param.Set("AllowedPattern", condition)
			}
			if allowed, ok := validation.Get("allowed_values"); ok {
				param.Set("AllowedValues", allowed)
			}
		}

		params.Set(name, param)
	}
	return nil
}

func convertBlockResources(resources, out *doctree.Node) error {
	if resources.Kind() != doctree.KindMapping {
		return fmt.Errorf("resource section is not a mapping")
	}
	for _, blockType := range resources.Keys() {
		group, _ := resources.Get(blockType)
		if group.Kind() != doctree.KindMapping {
			return fmt.Errorf("resource type %q is not a mapping", blockType)
		}
		declType, _ := mapping.DeclarativeResourceType(blockType)

		for _, name := range group.Keys() {
			config, _ := group.Get(name)
			if config.Kind() != doctree.KindMapping {
				return fmt.Errorf("resource %q %q is not a mapping", blockType, name)
			}

			properties := doctree.NewMapping()
			var dependsOn *doctree.Node
			for _, key := range config.Keys() {
				value, _ := config.Get(key)
				if key == "depends_on" {
					dependsOn = value
					continue
				}
				properties.Set(mapping.DeclarativePropertyName(blockType, key), expr.ToDeclarative(value))
			}

			resource := doctree.NewMapping()
			resource.Set("Type", doctree.String(declType))
			resource.Set("Properties", properties)
			if node := dependsOnNode(dependsOn); node != nil {
				resource.Set("DependsOn", node)
			}
			out.Set(name, resource)
		}
	}
	return nil
}

// dependsOnNode normalizes a dependency list for the declarative side:
// one dependency becomes a plain name, several stay a list.
func dependsOnNode(deps *doctree.Node) *doctree.Node {
	if deps == nil {
		return nil
	}
	if deps.Kind() != doctree.KindSequence {
		return deps
	}
	switch deps.Len() {
	case 0:
		return nil
	case 1:
		return deps.Items()[0]
	default:
		return deps
	}
}

func convertBlockOutputs(outputs, out *doctree.Node) {
	if outputs.Kind() != doctree.KindMapping {
		return
	}
	for _, name := range outputs.Keys() {
		config, _ := outputs.Get(name)
		if config.Kind() != doctree.KindMapping {
			continue
		}

		declared := doctree.NewMapping()

		description := "Output " + name
		if d, ok := config.Get("description"); ok {
			if s, sok := d.AsString(); sok {
				description = s
			}
		}
		declared.Set("Description", doctree.String(description))

		if value, ok := config.Get("value"); ok {
			declared.Set("Value", expr.ToDeclarative(value))
		}

		if sensitive, ok := config.Get("sensitive"); ok {
			if b, bok := sensitive.AsBool(); bok && b {
				declared.Set("NoEcho", doctree.Bool(true))
			}
		}

		out.Set(name, declared)
	}
}

// stashProviderConfig carries provider settings across on a best-effort,
// convention basis: the region lands in a reserved Mappings entry and an
// assumed-role ARN becomes a reserved parameter. This side channel is
// lossy; any other provider argument is dropped.
func stashProviderConfig(providers, template *doctree.Node) {
	aws, ok := providers.Get("aws")
	if !ok || aws.Kind() != doctree.KindMapping {
		return
	}

	if region, ok := aws.Get("region"); ok {
		name := doctree.NewMapping()
		name.Set("Name", region)
		regionMap := doctree.NewMapping()
		regionMap.Set("Region", name)
		mappings := doctree.NewMapping()
		mappings.Set(regionMapName, regionMap)
		template.Set("Mappings", mappings)
	}

	if assumeRole, ok := aws.Get("assume_role"); ok {
		if assumeRole.Kind() == doctree.KindSequence && assumeRole.Len() > 0 {
			assumeRole = assumeRole.Items()[0]
		}
		roleArn, ok := assumeRole.Get("role_arn")
		if !ok {
			return
		}
		param := doctree.NewMapping()
		param.Set("Type", doctree.String("String"))
		param.Set("Default", roleArn)
		param.Set("Description", doctree.String("ARN of role to assume"))
		params, _ := template.Get("Parameters")
		params.Set(assumeRoleArnParam, param)
	}
}

// dropEmptySections removes top-level keys whose value is an empty
// mapping or sequence. The emitted document never carries a
// present-but-empty section.
func dropEmptySections(doc *doctree.Node) {
	for _, key := range append([]string(nil), doc.Keys()...) {
		value, _ := doc.Get(key)
		if value.IsEmpty() {
			doc.Delete(key)
		}
	}
}
