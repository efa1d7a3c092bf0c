package hcl_adapter

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext builds the context configuration expressions are evaluated
// in. The process environment is exposed as `env.NAME`, and a small set of
// string functions is available for defaults and formatting.
func newEvalContext(ctx context.Context, environ []string) *hcl.EvalContext {
	envMap := make(map[string]cty.Value, len(environ))
	for _, e := range environ {
		name, value, ok := strings.Cut(e, "=")
		if !ok || name == "" {
			continue
		}
		envMap[name] = cty.StringVal(value)
	}

	ctxlog.FromContext(ctx).Debug("Built HCL evaluation context.", "env_vars", len(envMap))
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envMap),
		},
		Functions: map[string]function.Function{
			"lookup":   stdlib.LookupFunc,
			"coalesce": stdlib.CoalesceFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
			"format":   stdlib.FormatFunc,
		},
	}
}
