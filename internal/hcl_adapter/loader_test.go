package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kitresolve/internal/config"
	"github.com/zclconf/go-cty/cty"
)

func writeHCL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kit.config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeHCL(t, `
		preprocess = {
			typescript = true
			style      = "postcss"
		}

		kit {
			adapter "static" {
				pages       = "public"
				precompress = true
			}
			alias = {
				"@components" = "./src/lib/components"
				"@services"   = "./src/lib/services"
			}
		}
	`)

	// --- Act ---
	desc, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, path, desc.Source)
	require.Equal(t, "static", desc.Adapter.Name)
	require.Equal(t, map[string]string{
		"@components": "./src/lib/components",
		"@services":   "./src/lib/services",
	}, desc.Aliases)

	require.True(t, desc.Preprocess.Type().IsObjectType())
	require.True(t, desc.Preprocess.GetAttr("typescript").True())
	require.Equal(t, "postcss", desc.Preprocess.GetAttr("style").AsString())

	opts := desc.Adapter.Options
	require.Equal(t, cty.StringVal("public"), opts.GetAttr("pages"))
	require.Equal(t, cty.True, opts.GetAttr("precompress"))
}

func TestLoader_Load_DefaultsWhenKitIsOmitted(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, `preprocess = "vite"`)

	desc, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, config.DefaultAdapter, desc.Adapter.Name)
	require.True(t, desc.Adapter.Options.IsNull())
	require.Empty(t, desc.Aliases)
	require.Equal(t, "vite", desc.Preprocess.AsString())
}

func TestLoader_Load_AdapterWithoutOptions(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, `
		kit {
			adapter "node" {}
		}
	`)

	desc, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, "node", desc.Adapter.Name)
	require.Equal(t, 0, desc.Adapter.Options.LengthInt())
	require.True(t, desc.Preprocess.IsNull())
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		hcl     string
		wantErr string
	}{
		{
			name:    "syntax error",
			hcl:     "kit {\n  alias = {\n",
			wantErr: "failed to parse",
		},
		{
			name:    "unknown top-level attribute",
			hcl:     `output = "dist"`,
			wantErr: "failed to decode",
		},
		{
			name:    "alias is not an object",
			hcl:     "kit {\n  alias = \"./src\"\n}\n",
			wantErr: "alias must be an object of strings",
		},
		{
			name:    "alias value is not a string",
			hcl:     "kit {\n  alias = { \"@x\" = [\"a\"] }\n}\n",
			wantErr: `alias "@x" must be a string path`,
		},
		{
			name:    "nested block in adapter options",
			hcl:     "kit {\n  adapter \"node\" {\n    env {}\n  }\n}\n",
			wantErr: `invalid options for adapter "node"`,
		},
		{
			name:    "option references a variable",
			hcl:     "kit {\n  adapter \"node\" {\n    out = var.out\n  }\n}\n",
			wantErr: `invalid option "out"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeHCL(t, tc.hcl)

			desc, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			require.Nil(t, desc)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	require.Error(t, err)
}

func TestLoader_Load_EnvironmentAndFunctions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeHCL(t, `
		kit {
			adapter "node" {
				out        = lookup(env, "KIT_OUT", "build")
				env_prefix = upper(env.APP)
			}
			alias = {
				"@lib" = format("./%s/lib", env.SRC_DIR)
			}
		}
	`)
	loader := &Loader{Environ: []string{"APP=shop_", "SRC_DIR=src", "=ignored", "MALFORMED"}}

	// --- Act ---
	desc, err := loader.Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, map[string]string{"@lib": "./src/lib"}, desc.Aliases)
	require.True(t, desc.Adapter.Options.RawEquals(cty.ObjectVal(map[string]cty.Value{
		"out":        cty.StringVal("build"),
		"env_prefix": cty.StringVal("SHOP_"),
	})))
}

func TestLoader_Load_UnknownEnvironmentVariable(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, `
		kit {
			alias = { "@lib" = env.MISSING }
		}
	`)

	_, err := (&Loader{}).Load(context.Background(), path)
	require.ErrorContains(t, err, "invalid alias value")
}
