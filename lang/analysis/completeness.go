package analysis

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/jlang-gyoji/gyoji/lang/diag"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// Completeness verifies, for every composite in graph, that each inline
// (non-pointer, non-reference) field's type is fully defined, per
// §4.8.3. Composites are visited in name order so diagnostic order is
// deterministic.
func Completeness(graph *typegraph.Graph, diags *diag.Diagnostics) {
	types := graph.All()
	slices.SortFunc(types, func(a, b *typegraph.Type) int { return strings.Compare(a.Name(), b.Name()) })

	for _, t := range types {
		if t.Kind() != typegraph.KindComposite || !t.IsComplete() {
			continue
		}
		for _, f := range t.Fields() {
			if bad, ok := firstIncompleteInline(f.Type); ok {
				err := diag.NewError("field " + f.Name + " has incomplete type " + bad.Name()).
					AddMessage(f.Src, "member declared here").
					AddMessage(bad.SourceRef(), bad.Name()+" forward-declared here")
				diags.Add(err)
			}
		}
	}
}

// firstIncompleteInline follows array-of wrapping (arrays are laid out
// inline, so an incomplete element makes the array incomplete too) down
// to the first composite and reports it if incomplete. Pointers and
// references stop the walk: a composite behind one is never required to
// be complete at this site.
func firstIncompleteInline(t *typegraph.Type) (*typegraph.Type, bool) {
	for t != nil && t.Kind() == typegraph.KindArray {
		t = t.Elem()
	}
	if t == nil || t.Kind() != typegraph.KindComposite {
		return nil, false
	}
	if t.IsComplete() {
		return nil, false
	}
	return t, true
}
