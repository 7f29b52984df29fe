package dispatch

import "sort"

// Mapping describes one registered handler mapping for diagnostics.
type Mapping struct {
	// Pattern in descriptor form: "/a" exact, "/a/*" prefix, "*.ext"
	// extension.
	Pattern string
	// Handler is the mapped handler's name.
	Handler string
}

// Mappings lists every handler mapping, descriptor-style, sorted by pattern.
func (d *Dispatcher) Mappings() []Mapping {
	var out []Mapping
	d.table.Each(func(pattern string, exact bool, rt *route) {
		if !exact {
			pattern += "*"
		}
		out = append(out, Mapping{Pattern: pattern, Handler: rt.name})
	})
	for ext, rt := range d.extensions {
		out = append(out, Mapping{Pattern: "*." + ext, Handler: rt.name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
