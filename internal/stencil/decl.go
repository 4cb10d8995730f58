package stencil

// Decl is one class declaration in the generated header.
// The set of implementations is closed: BusPacked, Packed, Plain, Stream,
// LineBuffer, Memory and Typedef.
type Decl interface {
	// Name returns the C++ identifier the declaration introduces.
	Name() string
	decl()
}

// Extents are the two declared array dimensions of a value type.
type Extents struct {
	E0 int
	E1 int
}

// Size is the number of elements in the primary buffer.
func (e Extents) Size() int { return e.E0*e.E1 + Slack }

// AuxSize is the number of elements in the auxiliary buffer.
func (e Extents) AuxSize() int { return AuxBase + e.E0*e.E1 }

const (
	// Slack is added to the primary buffer capacity.
	Slack = 0
	// AuxBase is the fixed part of the auxiliary buffer capacity.
	AuxBase = 20
	// StreamDepth is the capacity of every stream backing array.
	StreamDepth = 1000
)

// BusPacked is the bus-side packed value type (AxiPackedStencil).
type BusPacked struct {
	Type string
	Extents
}

// Packed is the packed value type (PackedStencil).
type Packed struct {
	Type string
	Extents
}

// Plain is the plain value type (Stencil).
type Plain struct {
	Type string
	Extents
}

// Stream is a FIFO-like channel of Elem, which is an already rendered class name.
type Stream struct {
	Elem string
}

// LineBuffer adapts a stream of In stencils into a stream of Out stencils.
// In and Out are rendered class names of the element types; the class name
// is built from the streams that carry them.
type LineBuffer struct {
	In  string
	Out string
	B0  int
	B1  int
}

// Memory is a fixed-depth random access memory of Type.
type Memory struct {
	Type  string
	Depth int
}

// Typedef aliases an existing class name.
type Typedef struct {
	Target string
	Alias  string
}

func (d BusPacked) Name() string { return StencilName(PrefixAxiPacked, d.Type, d.E0, d.E1) }
func (d Packed) Name() string    { return StencilName(PrefixPacked, d.Type, d.E0, d.E1) }
func (d Plain) Name() string     { return StencilName(PrefixPlain, d.Type, d.E0, d.E1) }
func (d Stream) Name() string    { return StreamName(d.Elem) }
func (d Memory) Name() string    { return MemoryName(d.Type, d.Depth) }
func (d Typedef) Name() string   { return d.Alias }

func (d LineBuffer) Name() string {
	return LineBufferName(StreamName(d.In), StreamName(d.Out), d.B0, d.B1)
}

func (BusPacked) decl()  {}
func (Packed) decl()     {}
func (Plain) decl()      {}
func (Stream) decl()     {}
func (LineBuffer) decl() {}
func (Memory) decl()     {}
func (Typedef) decl()    {}
