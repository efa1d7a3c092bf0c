package emit

import (
	"encoding/json"
	"fmt"

	"github.com/vk/kitresolve/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Document is the serializable form of a resolved configuration.
type Document struct {
	ProjectRoot string            `json:"projectRoot" yaml:"projectRoot"`
	Preprocess  any               `json:"preprocess" yaml:"preprocess"`
	Adapter     AdapterDocument   `json:"adapter" yaml:"adapter"`
	Aliases     map[string]string `json:"aliases" yaml:"aliases"`
}

// AdapterDocument is the serializable form of the resolved adapter.
type AdapterDocument struct {
	Name    string `json:"name" yaml:"name"`
	Options any    `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewDocument builds the serializable form of r. Opaque values are rendered
// through their JSON form; adapter options are rendered by their `cty` tag
// names using conv.
func NewDocument(r *config.Resolved, conv config.Converter) (*Document, error) {
	preprocess, err := nativeFromValue(r.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("failed to render preprocess options: %w", err)
	}

	doc := &Document{
		ProjectRoot: r.ProjectRoot,
		Preprocess:  preprocess,
		Adapter:     AdapterDocument{Name: r.Adapter.Name()},
		Aliases:     r.Aliases(),
	}

	if opts := r.Adapter.Options(); opts != nil {
		val, err := conv.ToCtyValue(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render options of adapter %q: %w", doc.Adapter.Name, err)
		}
		if doc.Adapter.Options, err = nativeFromValue(val); err != nil {
			return nil, fmt.Errorf("failed to render options of adapter %q: %w", doc.Adapter.Name, err)
		}
	}
	return doc, nil
}

func nativeFromValue(v cty.Value) (any, error) {
	raw, err := config.ValueToJSON(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
