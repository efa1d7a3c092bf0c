package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level schema of a kit.config.hcl file. There is no
// remain field, so unknown blocks and attributes are rejected by the decoder.
type fileRoot struct {
	Preprocess hcl.Expression `hcl:"preprocess,optional"`
	Kit        *Kit           `hcl:"kit,block"`
}

// Kit is the HCL schema of the `kit` block.
type Kit struct {
	Adapter *Adapter       `hcl:"adapter,block"`
	Alias   hcl.Expression `hcl:"alias,optional"`
}

// Adapter is the HCL schema of the `adapter "<name>" { ... }` block. Its
// attributes are the adapter's options and are not known ahead of time.
type Adapter struct {
	Name    string   `hcl:"name,label"`
	Options hcl.Body `hcl:",remain"`
}
