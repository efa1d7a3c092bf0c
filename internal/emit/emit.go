package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vk/kitresolve/internal/config"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTSConfig Format = "tsconfig"
)

// Formats lists every supported output format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTSConfig}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Write renders r in the given format. For FormatTSConfig, tsBase is the
// directory the generated paths are made relative to; empty keeps them
// absolute.
func Write(w io.Writer, format Format, r *config.Resolved, conv config.Converter, tsBase string) error {
	switch format {
	case FormatJSON:
		return JSON(w, r, conv)
	case FormatYAML:
		return YAML(w, r, conv)
	case FormatTSConfig:
		return TSConfig(w, r, tsBase)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes the resolved configuration as an indented JSON document.
func JSON(w io.Writer, r *config.Resolved, conv config.Converter) error {
	doc, err := NewDocument(r, conv)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// YAML writes the resolved configuration as a YAML document.
func YAML(w io.Writer, r *config.Resolved, conv config.Converter) error {
	doc, err := NewDocument(r, conv)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

type tsconfig struct {
	CompilerOptions tsCompilerOptions `json:"compilerOptions"`
}

type tsCompilerOptions struct {
	Paths map[string][]string `json:"paths"`
}

// TSConfig writes a tsconfig fragment mapping every alias, and everything
// beneath it, to its resolved directory.
func TSConfig(w io.Writer, r *config.Resolved, base string) error {
	paths := make(map[string][]string)
	for _, name := range r.AliasNames() {
		target, _ := r.Alias(name)
		if base != "" {
			rel, err := filepath.Rel(base, target)
			if err != nil {
				return fmt.Errorf("alias %q: %w", name, err)
			}
			target = filepath.ToSlash(rel)
			if target != "." && target != ".." && !strings.HasPrefix(target, "../") {
				target = "./" + target
			}
		} else {
			target = filepath.ToSlash(target)
		}

		paths[name] = []string{target}
		paths[strings.TrimSuffix(name, "/")+"/*"] = []string{strings.TrimSuffix(target, "/") + "/*"}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tsconfig{CompilerOptions: tsCompilerOptions{Paths: paths}})
}
