package hcl_adapter

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// DecodeValue populates the Go struct behind target from an object (or map)
// value. Fields are matched by their `cty` tag; fields without a matching
// attribute keep whatever value they already hold, which is how adapters
// supply defaults. An attribute with no matching field is an error.
func (c *Converter) DecodeValue(ctx context.Context, val cty.Value, target any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting cty value decoding.", "target", fmt.Sprintf("%T", target))

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to a struct, got %T", target)
	}

	if val.IsNull() {
		logger.Debug("Value is null, keeping target defaults.")
		return nil
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value must be fully known")
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("expected an object, got %s", ty.FriendlyName())
	}

	fields := ctyFieldNames(ptr.Elem().Type())
	var unknown []string
	for name := range val.AsValueMap() {
		if !slices.Contains(fields, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unsupported attribute(s): %s", strings.Join(unknown, ", "))
	}

	if err := c.decode(ctx, val, ptr.Interface()); err != nil {
		return err
	}
	logger.Debug("Finished cty value decoding successfully.")
	return nil
}

// ctyFieldNames returns the `cty` tag names of the exported fields of t.
func ctyFieldNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		if name, ok := ctyTagName(t.Field(i)); ok {
			names = append(names, name)
		}
	}
	return names
}

func ctyTagName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	name := strings.Split(f.Tag.Get("cty"), ",")[0]
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}
