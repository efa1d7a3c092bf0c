package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry checks every registered options struct: it must be a
// pointer to a struct, its `cty` tags must be unique and every tagged field
// must have a concrete type that can be decoded from configuration and
// rendered back by the emitters.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		def := r.adapters[name]
		if def.NewOptions == nil {
			logger.Debug("Adapter takes no options, skipping.", "adapter", name)
			continue
		}

		options := def.NewOptions()
		ptr := reflect.ValueOf(options)
		if options == nil || ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("adapter '%s': NewOptions must return a non-nil pointer to a struct, got %T", name, options))
			continue
		}

		optionsType := ptr.Elem().Type()
		seen := make(map[string]string)
		for i := 0; i < optionsType.NumField(); i++ {
			field := optionsType.Field(i)
			if !field.IsExported() {
				continue
			}
			tagName := strings.Split(field.Tag.Get("cty"), ",")[0]
			if tagName == "" || tagName == "-" {
				logger.Warn("Adapter options field has no cty tag and cannot be configured.", "adapter", name, "field", field.Name)
				continue
			}

			if other, dup := seen[tagName]; dup {
				errs = append(errs, fmt.Sprintf("adapter '%s': option '%s' is declared by both %s and %s", name, tagName, other, field.Name))
				continue
			}
			seen[tagName] = field.Name

			if field.Type.Kind() == reflect.Interface {
				errs = append(errs, fmt.Sprintf("adapter '%s', option '%s': field %s has interface type %s; use cty.Value for untyped options", name, tagName, field.Name, field.Type))
				continue
			}
			if _, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface()); err != nil {
				errs = append(errs, fmt.Sprintf("adapter '%s', option '%s': field %s has unsupported type %s: %v", name, tagName, field.Name, field.Type, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
