// Package json_adapter loads kit.config.json and kit.config.jsonc files.
// Comments and trailing commas are stripped before decoding.
package json_adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
)

// Loader is the JSON-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new JSON configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Preprocess json.RawMessage `json:"preprocess"`
	Kit        *kit            `json:"kit"`
}

type kit struct {
	// Adapter is either a bare name or an object with name and options.
	Adapter json.RawMessage   `json:"adapter"`
	Alias   map[string]string `json:"alias"`
}

type adapter struct {
	Name    string          `json:"name"`
	Options json.RawMessage `json:"options"`
}

// Load reads a single JSON/JSONC file and merges it over config.Defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Description, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("JSON loader started.")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}

	desc, err := Parse(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	desc.Source = path

	logger.Debug("JSON loading complete.", "adapter", desc.Adapter.Name, "aliases", len(desc.Aliases))
	return desc, nil
}

// Parse decodes a plain JSON document into a description merged over
// config.Defaults. Unknown fields are rejected.
func Parse(data []byte) (*config.Description, error) {
	desc := config.Defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return desc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var root fileRoot
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after the top-level object")
	}

	preprocess, err := config.ValueFromJSON(root.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("invalid preprocess value: %w", err)
	}
	desc.Preprocess = preprocess

	if root.Kit == nil {
		return desc, nil
	}

	if sel, ok, err := parseAdapter(root.Kit.Adapter); err != nil {
		return nil, err
	} else if ok {
		desc.Adapter = sel
	}

	if root.Kit.Alias != nil {
		desc.Aliases = root.Kit.Alias
	}
	return desc, nil
}

func parseAdapter(raw json.RawMessage) (config.AdapterSelector, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return config.AdapterSelector{}, false, nil
	}

	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return config.AdapterSelector{}, false, fmt.Errorf("invalid adapter: %w", err)
		}
		return config.AdapterSelector{Name: name}, true, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var a adapter
	if err := dec.Decode(&a); err != nil {
		return config.AdapterSelector{}, false, fmt.Errorf("invalid adapter: %w", err)
	}
	options, err := config.ValueFromJSON(a.Options)
	if err != nil {
		return config.AdapterSelector{}, false, fmt.Errorf("invalid options for adapter %q: %w", a.Name, err)
	}
	return config.AdapterSelector{Name: a.Name, Options: options}, true, nil
}
