package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestValueFromJSON(t *testing.T) {
	t.Parallel()

	val, err := ValueFromJSON([]byte(`{"typescript": true, "plugins": ["a", "b"], "level": 2}`))

	require.NoError(t, err)
	require.True(t, val.GetAttr("typescript").True())
	require.Equal(t, 2, val.GetAttr("plugins").LengthInt())
	require.True(t, val.GetAttr("level").RawEquals(cty.NumberIntVal(2)))
}

func TestValueFromJSON_Null(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "null"} {
		val, err := ValueFromJSON([]byte(raw))
		require.NoError(t, err)
		require.True(t, val.IsNull(), "input %q", raw)
	}
}

func TestValueFromNative(t *testing.T) {
	t.Parallel()

	val, err := ValueFromNative(map[string]any{"out": "build", "gzip": false})

	require.NoError(t, err)
	require.Equal(t, "build", val.GetAttr("out").AsString())
	require.False(t, val.GetAttr("gzip").True())
}

func TestValueToJSON(t *testing.T) {
	t.Parallel()

	raw, err := ValueToJSON(cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("x")}))
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"x"}`, string(raw))

	raw, err = ValueToJSON(cty.NilVal)
	require.NoError(t, err)
	require.Equal(t, "null", string(raw))
}
