// This file contains the logic for translating the HCL schema structs into
// the format-agnostic description defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translate merges the decoded HCL file into desc. Only what the file sets
// overrides the defaults already present in desc.
func (l *Loader) translate(ctx context.Context, evalCtx *hcl.EvalContext, root *fileRoot, desc *config.Description) error {
	logger := ctxlog.FromContext(ctx)

	if isExprDefined(ctx, root.Preprocess, "preprocess") {
		val, diags := root.Preprocess.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("invalid preprocess value: %w", diags)
		}
		if !val.IsNull() {
			desc.Preprocess = val
		}
		logger.Debug("Preprocess options captured.", "type", val.Type().FriendlyName())
	}

	if root.Kit == nil {
		logger.Debug("No kit block found, keeping defaults.")
		return nil
	}

	if root.Kit.Adapter != nil {
		options, err := bodyToObject(evalCtx, root.Kit.Adapter)
		if err != nil {
			return err
		}
		desc.Adapter = config.AdapterSelector{Name: root.Kit.Adapter.Name, Options: options}
	}

	if isExprDefined(ctx, root.Kit.Alias, "alias") {
		val, diags := root.Kit.Alias.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("invalid alias value: %w", diags)
		}
		aliases, err := aliasMapFromValue(val)
		if err != nil {
			return err
		}
		desc.Aliases = aliases
	}
	return nil
}

// aliasMapFromValue converts an evaluated `alias` object into a Go map. Every
// element must be a string.
func aliasMapFromValue(val cty.Value) (map[string]string, error) {
	aliases := make(map[string]string)
	if val.IsNull() {
		return aliases, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("alias must be an object of strings, got %s", ty.FriendlyName())
	}
	it := val.ElementIterator()
	for it.Next() {
		key, elem := it.Element()
		name := key.AsString()
		if elem.IsNull() || !elem.IsKnown() || !elem.Type().Equals(cty.String) {
			return nil, fmt.Errorf("alias %q must be a string path", name)
		}
		aliases[name] = elem.AsString()
	}
	return aliases, nil
}
