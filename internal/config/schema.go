package config

import (
	"fmt"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeStringList
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeStringList:
		return "string list"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g. "release_notes.output")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types
	Description   string          // Help text
	Default       interface{}
}

// KnownKeys is the registry of all configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"project_name": {
		Path:        "project_name",
		Type:        TypeString,
		Description: "Project name used in generated pages and mkdocs.yml",
		Default:     "",
	},
	"output_dir": {
		Path:        "output_dir",
		Type:        TypeString,
		Description: "Directory for generated Markdown documentation",
		Default:     "docs",
	},
	"site_dir": {
		Path:        "site_dir",
		Type:        TypeString,
		Description: "Directory holding mkdocs.yml",
		Default:     ".",
	},
	"exclude_patterns": {
		Path:        "exclude_patterns",
		Type:        TypeStringList,
		Description: "Path segments skipped while scanning sources",
		Default:     "node_modules,build,.build,bin,obj",
	},
	"languages": {
		Path:          "languages",
		Type:          TypeStringList,
		AllowedValues: []string{"swift", "kotlin", "dotnet"},
		Description:   "Doc-comment parsers to run",
		Default:       "swift,kotlin,dotnet",
	},
	"release_notes.output": {
		Path:        "release_notes.output",
		Type:        TypeString,
		Description: "Default output path for the release-notes command",
		Default:     "docs/release-notes.md",
	},
	"release_notes.types": {
		Path:        "release_notes.types",
		Type:        TypeStringList,
		Description: "Extra conventional-commit types (e.g. deps)",
		Default:     "",
	},
}

// ErrUnknownKey is returned for configuration keys not in the registry.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ValidateValue validates a raw string value against the schema for a key
// and returns it converted to the schema type.
func ValidateValue(key, value string) (interface{}, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return nil, err
	}

	switch schema.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
		}
	case TypeStringList:
		items := splitList(value)
		if len(schema.AllowedValues) > 0 {
			for _, item := range items {
				if !contains(schema.AllowedValues, item) {
					return nil, fmt.Errorf("invalid value: %q (valid options: %s)",
						item, strings.Join(schema.AllowedValues, ", "))
				}
			}
		}
		return items, nil
	case TypeEnum:
		if !contains(schema.AllowedValues, value) {
			return nil, fmt.Errorf("invalid value: %q (valid options: %s)",
				value, strings.Join(schema.AllowedValues, ", "))
		}
		return value, nil
	default:
		return value, nil
	}
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
