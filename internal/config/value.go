package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ValueFromJSON converts a JSON document into a cty value whose type is
// implied from the document itself. Empty input and `null` yield cty.NilVal.
func ValueFromJSON(raw []byte) (cty.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return cty.NilVal, nil
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot infer type: %w", err)
	}
	return ctyjson.Unmarshal(raw, ty)
}

// ValueFromNative converts a decoded document tree (maps, slices and
// scalars as produced by encoding/json or yaml.v3) into a cty value.
func ValueFromNative(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return cty.NilVal, err
	}
	return ValueFromJSON(raw)
}

// ValueToJSON renders a cty value as JSON. Null values render as `null`.
func ValueToJSON(v cty.Value) (json.RawMessage, error) {
	if v.IsNull() {
		return json.RawMessage("null"), nil
	}
	return ctyjson.Marshal(v, v.Type())
}
