// Package translate turns schema nodes into zod validation fragments.
// Translation is pure: the same node always produces the same fragment, so
// callers may cache results by structural equality.
package translate

import "sort"

// Fragment is one generated zod expression plus the component identifiers it
// references. Refs drive import bookkeeping and declaration ordering in the
// schemas artifact; they name component exports (e.g. "PetSchema").
type Fragment struct {
	Code string
	Refs []string
}

// Warning records a non-fatal translation issue, such as a schema shape that
// degraded to a permissive fragment.
type Warning struct {
	Path    string
	Message string
}

func mergeRefs(frags ...Fragment) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, f := range frags {
		for _, r := range f.Refs {
			if !seen[r] {
				seen[r] = true
				refs = append(refs, r)
			}
		}
	}
	sort.Strings(refs)
	return refs
}
