// Copyright The Cloud Format Converter Authors.
// SPDX-License-Identifier: Apache-2.0
package converter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brokosz/cloud-format-converter/pkg/doctree"
	"github.com/brokosz/cloud-format-converter/pkg/expr"
	"github.com/brokosz/cloud-format-converter/pkg/mapping"
)

// ToBlockFormat converts declarative source text (JSON or YAML) into a
// block-format tree. Any failure is reported as a single
// ConversionError; no partial document is returned.
func (c *Converter) ToBlockFormat(declarativeSource string) (*doctree.Node, error) {
	template, err := doctree.DecodeDeclarative([]byte(declarativeSource))
	if err != nil {
		return nil, &ConversionError{Direction: DirectionToBlock, Err: err}
	}
	if template.Kind() != doctree.KindMapping {
		return nil, &ConversionError{
			Direction: DirectionToBlock,
			Err:       fmt.Errorf("declarative document is not a mapping"),
		}
	}

	tf := doctree.NewMapping()
	tf.Set("terraform", c.requiredProvidersNode())

	if provider := extractProviderConfig(template); !provider.IsEmpty() {
		providers := doctree.NewMapping()
		providers.Set("aws", provider)
		tf.Set("provider", providers)
	}

	if params, ok := template.Get("Parameters"); ok {
		variables := doctree.NewMapping()
		if err := convertParametersToVariables(params, variables); err != nil {
			return nil, &ConversionError{Direction: DirectionToBlock, Err: err}
		}
		tf.Set("variable", variables)
	}

	if resources, ok := template.Get("Resources"); ok {
		grouped := doctree.NewMapping()
		if err := convertDeclarativeResources(resources, grouped); err != nil {
			return nil, &ConversionError{Direction: DirectionToBlock, Err: err}
		}
		tf.Set("resource", grouped)
	}

	if outputs, ok := template.Get("Outputs"); ok {
		converted := doctree.NewMapping()
		convertDeclarativeOutputs(outputs, converted)
		tf.Set("output", converted)
	}

	dropEmptySections(tf)
	return tf, nil
}

func (c *Converter) requiredProvidersNode() *doctree.Node {
	aws := doctree.NewMapping()
	aws.Set("source", doctree.String(providerSource))
	aws.Set("version", doctree.String(c.providerVersion))
	required := doctree.NewMapping()
	required.Set("aws", aws)
	terraform := doctree.NewMapping()
	terraform.Set("required_providers", required)
	return terraform
}

// extractProviderConfig recovers provider settings from the reserved
// side-channel locations written by the opposite direction: the region
// mapping entry and the assumed-role parameter.
func extractProviderConfig(template *doctree.Node) *doctree.Node {
	provider := doctree.NewMapping()

	if mappings, ok := template.Get("Mappings"); ok {
		if regionMap, ok := mappings.Get(regionMapName); ok {
			if region, ok := regionMap.Get("Region"); ok {
				if name, ok := region.Get("Name"); ok {
					provider.Set("region", name)
				}
			}
		}
	}

	if params, ok := template.Get("Parameters"); ok {
		if param, ok := params.Get(assumeRoleArnParam); ok {
			if def, ok := param.Get("Default"); ok {
				assumeRole := doctree.NewMapping()
				assumeRole.Set("role_arn", def)
				provider.Set("assume_role", assumeRole)
			}
		}
	}

	return provider
}

func convertParametersToVariables(params, variables *doctree.Node) error {
	if params.Kind() != doctree.KindMapping {
		return fmt.Errorf("Parameters section is not a mapping")
	}
	for _, name := range params.Keys() {
		config, _ := params.Get(name)
		if config.Kind() != doctree.KindMapping {
			return fmt.Errorf("parameter %q is not a mapping", name)
		}

		variable := doctree.NewMapping()

		typeTag := "String"
		if t, ok := config.Get("Type"); ok {
			if s, sok := t.AsString(); sok {
				typeTag = s
			}
		}
		variable.Set("type", doctree.String(mapping.BlockTypeTag(typeTag)))

		description := "Variable for " + name
		if d, ok := config.Get("Description"); ok {
			if s, sok := d.AsString(); sok {
				description = s
			}
		}
		variable.Set("description", doctree.String(description))

		if def, ok := config.Get("Default"); ok {
			variable.Set("default", def)
		}

		if allowed, ok := config.Get("AllowedValues"); ok && allowed.Kind() == doctree.KindSequence {
			validation := doctree.NewMapping()
			validation.Set("condition", doctree.String(fmt.Sprintf(
				"can(index([%s], var.%s))", quotedList(allowed), name)))
			validation.Set("error_message", doctree.String(fmt.Sprintf(
				"Variable %s must be one of: %s", name, plainList(allowed))))
			variable.Set("validation", validation)
		}

		variables.Set(name, variable)
	}
	return nil
}

// convertDeclarativeResources flattens Resources entries into the block
// format's two-level grouping: resource type, then resource name.
func convertDeclarativeResources(resources, grouped *doctree.Node) error {
	if resources.Kind() != doctree.KindMapping {
		return fmt.Errorf("Resources section is not a mapping")
	}
	for _, name := range resources.Keys() {
		record, _ := resources.Get(name)
		if record.Kind() != doctree.KindMapping {
			return fmt.Errorf("resource %q is not a mapping", name)
		}

		declTypeNode, ok := record.Get("Type")
		if !ok {
			return fmt.Errorf("resource %q has no Type", name)
		}
		declType, ok := declTypeNode.AsString()
		if !ok {
			return fmt.Errorf("resource %q Type is not a string", name)
		}
		blockType, _ := mapping.BlockResourceType(declType)

		config := doctree.NewMapping()
		if properties, ok := record.Get("Properties"); ok && properties.Kind() == doctree.KindMapping {
			for _, key := range properties.Keys() {
				value, _ := properties.Get(key)
				config.Set(mapping.BlockPropertyName(declType, key), expr.ToBlock(value))
			}
		}

		if deps, ok := record.Get("DependsOn"); ok {
			// A bare name is re-expanded to a one-element list.
			if deps.Kind() == doctree.KindSequence {
				config.Set("depends_on", deps)
			} else {
				config.Set("depends_on", doctree.NewSequence(deps))
			}
		}

		group := ensureMapping(grouped, blockType)
		group.Set(name, config)
	}
	return nil
}

func convertDeclarativeOutputs(outputs, converted *doctree.Node) {
	if outputs.Kind() != doctree.KindMapping {
		return
	}
	for _, name := range outputs.Keys() {
		config, _ := outputs.Get(name)
		if config.Kind() != doctree.KindMapping {
			continue
		}

		output := doctree.NewMapping()

		description := "Output " + name
		if d, ok := config.Get("Description"); ok {
			if s, sok := d.AsString(); sok {
				description = s
			}
		}
		output.Set("description", doctree.String(description))

		if value, ok := config.Get("Value"); ok {
			output.Set("value", expr.ToBlock(value))
		}

		if noEcho, ok := config.Get("NoEcho"); ok {
			if b, bok := noEcho.AsBool(); bok && b {
				output.Set("sensitive", doctree.Bool(true))
			}
		}

		converted.Set(name, output)
	}
}

// quotedList renders scalar values as a comma-separated list of quoted
// items, for generated validation conditions.
func quotedList(values *doctree.Node) string {
	parts := make([]string, 0, values.Len())
	for _, item := range values.Items() {
		if s, ok := item.AsString(); ok {
			parts = append(parts, strconv.Quote(s))
			continue
		}
		parts = append(parts, fmt.Sprintf("%v", item.Scalar()))
	}
	return strings.Join(parts, ", ")
}

// plainList renders scalar values as a comma-separated list without
// quoting, for generated error messages.
func plainList(values *doctree.Node) string {
	parts := make([]string, 0, values.Len())
	for _, item := range values.Items() {
		parts = append(parts, fmt.Sprintf("%v", item.Scalar()))
	}
	return strings.Join(parts, ", ")
}
