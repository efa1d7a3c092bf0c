package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder often populates optional fields with non-nil, zero-width
// expression objects, so a simple nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	// A real attribute occupies bytes in the file, while a placeholder for
	// an omitted optional attribute has a zero-width range.
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// bodyToObject evaluates every attribute of an adapter block into a single
// object value. Nested blocks are not allowed.
func bodyToObject(evalCtx *hcl.EvalContext, a *Adapter) (cty.Value, error) {
	if a.Options == nil {
		return cty.EmptyObjectVal, nil
	}
	attrs, diags := a.Options.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid options for adapter %q: %w", a.Name, diags)
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}

	vals := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("invalid option %q for adapter %q: %w", name, a.Name, diags)
		}
		vals[name] = val
	}
	return cty.ObjectVal(vals), nil
}
