package stencil

import "strconv"

// Class name prefixes for the value-type archetypes.
const (
	PrefixAxiPacked = "AxiPackedStencil"
	PrefixPacked    = "PackedStencil"
	PrefixPlain     = "Stencil"
)

// StencilName renders "{prefix}_{type}_{e0}_{e1}_".
// Every declaration that refers to a value type by name must go through here.
func StencilName(prefix, typ string, e0, e1 int) string {
	return prefix + "_" + typ + "_" + strconv.Itoa(e0) + "_" + strconv.Itoa(e1) + "_"
}

// StreamName renders the stream class carrying elements of the named class.
func StreamName(elem string) string {
	return "hls_stream_" + elem + "_"
}

// LineBufferName joins the two endpoint stream names and the buffer bounds.
func LineBufferName(inStream, outStream string, b0, b1 int) string {
	return "linebuffer_" + inStream + "_to_" + outStream + "_bnds_" + strconv.Itoa(b0) + "_" + strconv.Itoa(b1)
}

// MemoryName renders the fixed-depth RAM class name.
func MemoryName(typ string, depth int) string {
	return "ram_" + typ + "_" + strconv.Itoa(depth)
}
