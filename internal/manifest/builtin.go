package manifest

// Builtin returns the selection hard-coded for a known application.
func Builtin(app string) (*Manifest, bool) {
	fn, ok := builtins[app]
	if !ok {
		return nil, false
	}
	return fn(), true
}

var builtins = map[string]func() *Manifest{
	"pointwise": pointwise,
}

func pointwise() *Manifest {
	u16 := func(kind string) *Ref {
		return &Ref{Kind: kind, Type: "uint16_t", Extents: []int{1, 1}}
	}
	return &Manifest{
		App:      "pointwise",
		Revision: "full",
		Entries: []Entry{
			{Kind: KindAxiPacked, Type: "uint16_t", Extents: []int{1, 1}},
			{Kind: KindPacked, Type: "uint16_t", Extents: []int{1, 1}},
			{Kind: KindPlain, Type: "uint16_t", Extents: []int{1, 1}},
			{Kind: KindStream, Of: u16(KindAxiPacked)},
			{Kind: KindStream, Of: u16(KindPacked)},
			{Kind: KindStream, Of: u16(KindPlain)},
		},
	}
}
