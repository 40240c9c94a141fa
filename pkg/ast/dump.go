package ast

import "github.com/davecgh/go-spew/spew"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
}

// Dump renders the full Go structure of node, including token positions.
func Dump(node Node) string {
	return dumpConfig.Sdump(node)
}
