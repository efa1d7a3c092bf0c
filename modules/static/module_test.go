package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/hcl_adapter"
	"github.com/vk/kitresolve/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New(hcl_adapter.NewConverter())
	(&Module{}).Register(r)
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}

func TestStatic_Defaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := newRegistry(t)

	// --- Act ---
	a, err := r.Lookup(context.Background(), config.AdapterSelector{Name: Name})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), a.Options())
}

func TestStatic_OverridesKeepOtherDefaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := newRegistry(t)
	opts := cty.ObjectVal(map[string]cty.Value{
		"pages":    cty.StringVal("public"),
		"fallback": cty.StringVal("200.html"),
	})

	// --- Act ---
	a, err := r.Lookup(context.Background(), config.AdapterSelector{Name: Name, Options: opts})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, &Options{
		Pages:    "public",
		Assets:   "build",
		Fallback: "200.html",
		Strict:   true,
	}, a.Options())
}

func TestStatic_RejectsWrongType(t *testing.T) {
	t.Parallel()

	r := newRegistry(t)
	opts := cty.ObjectVal(map[string]cty.Value{"strict": cty.StringVal("sometimes")})

	_, err := r.Lookup(context.Background(), config.AdapterSelector{Name: Name, Options: opts})
	require.ErrorIs(t, err, registry.ErrInvalidOptions)
}
