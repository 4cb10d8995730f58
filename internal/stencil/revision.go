package stencil

import (
	"fmt"
	"sort"
)

// Revision selects the member set rendered for each archetype.
// The build scripts this replaces each shipped a slightly different shape
// for the same class names, so every shape is kept as a named configuration.
type Revision struct {
	Name string
	// BusSetter adds the three-coordinate set() mutator to the bus-packed type.
	BusSetter bool
	// PackedConversion adds the implicit conversion from the packed to the bus-packed type.
	PackedConversion bool
	// Composites renders members for line buffers and memories; otherwise they are empty classes.
	Composites bool
}

var (
	Full    = Revision{Name: "full", BusSetter: true, PackedConversion: true, Composites: true}
	Compact = Revision{Name: "compact", Composites: true}
	Stub    = Revision{Name: "stub", BusSetter: true, PackedConversion: true}
)

var revisions = map[string]Revision{
	Full.Name:    Full,
	Compact.Name: Compact,
	Stub.Name:    Stub,
}

// LookupRevision returns the named revision. An empty name selects Full.
func LookupRevision(name string) (Revision, error) {
	if name == "" {
		return Full, nil
	}
	r, ok := revisions[name]
	if !ok {
		return Revision{}, fmt.Errorf("unknown revision '%s' (supported: %v)", name, RevisionNames())
	}
	return r, nil
}

// RevisionNames lists the known revisions in sorted order.
func RevisionNames() []string {
	names := make([]string, 0, len(revisions))
	for n := range revisions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
