// Package yaml_adapter loads kit.config.yaml and kit.config.yml files.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Preprocess any  `yaml:"preprocess"`
	Kit        *kit `yaml:"kit"`
}

type kit struct {
	// Adapter is either a bare name or a mapping with name and options.
	Adapter yaml.Node         `yaml:"adapter"`
	Alias   map[string]string `yaml:"alias"`
}

type adapter struct {
	Name    string `yaml:"name"`
	Options any    `yaml:"options"`
}

// Load reads a single YAML file and merges it over config.Defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Description, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("YAML loader started.")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	desc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	desc.Source = path

	logger.Debug("YAML loading complete.", "adapter", desc.Adapter.Name, "aliases", len(desc.Aliases))
	return desc, nil
}

// Parse decodes a YAML document into a description merged over
// config.Defaults. Unknown fields are rejected.
func Parse(data []byte) (*config.Description, error) {
	desc := config.Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return desc, nil
		}
		return nil, err
	}

	preprocess, err := config.ValueFromNative(root.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("invalid preprocess value: %w", err)
	}
	desc.Preprocess = preprocess

	if root.Kit == nil {
		return desc, nil
	}

	if sel, ok, err := parseAdapter(&root.Kit.Adapter); err != nil {
		return nil, err
	} else if ok {
		desc.Adapter = sel
	}

	if root.Kit.Alias != nil {
		desc.Aliases = root.Kit.Alias
	}
	return desc, nil
}

func parseAdapter(node *yaml.Node) (config.AdapterSelector, bool, error) {
	switch node.Kind {
	case 0:
		return config.AdapterSelector{}, false, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return config.AdapterSelector{}, false, nil
		}
		return config.AdapterSelector{Name: node.Value}, true, nil
	case yaml.MappingNode:
		// node.Decode does not inherit KnownFields from the file decoder.
		if err := checkKeys(node, "name", "options"); err != nil {
			return config.AdapterSelector{}, false, fmt.Errorf("invalid adapter: %w", err)
		}
		var a adapter
		if err := node.Decode(&a); err != nil {
			return config.AdapterSelector{}, false, fmt.Errorf("invalid adapter: %w", err)
		}
		options, err := config.ValueFromNative(a.Options)
		if err != nil {
			return config.AdapterSelector{}, false, fmt.Errorf("invalid options for adapter %q: %w", a.Name, err)
		}
		return config.AdapterSelector{Name: a.Name, Options: options}, true, nil
	default:
		return config.AdapterSelector{}, false, fmt.Errorf("invalid adapter: line %d: expected a name or a mapping", node.Line)
	}
}

// checkKeys rejects mapping keys outside allowed.
func checkKeys(node *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: field %s not found in adapter", key.Line, key.Value)
		}
	}
	return nil
}
