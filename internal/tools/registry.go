package tools

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Registry provides lookup over the registered tool set.
//
// Registry is stateless and safe for concurrent use: it performs fresh
// lookups against the Genkit instance on each call, with the catalog as the
// source of truth for names and ordering.
type Registry struct {
	g *genkit.Genkit
}

// NewRegistry creates a tool registry backed by the given Genkit instance.
func NewRegistry(g *genkit.Genkit) *Registry {
	return &Registry{g: g}
}

// All returns every registered tool in stable catalog order.
func (r *Registry) All(ctx context.Context) []ai.ToolRef {
	return r.ByNames(ctx, Names())
}

// ByNames returns the tools whose names appear in names, preserving the
// order given. Unknown names are silently dropped, not rejected — callers
// asking for a mixed set get the known subset. This leniency is deliberate
// and matches the catalog's public contract.
func (r *Registry) ByNames(_ context.Context, names []string) []ai.ToolRef {
	refs := make([]ai.ToolRef, 0, len(names))
	for _, name := range names {
		if tool := genkit.LookupTool(r.g, name); tool != nil {
			refs = append(refs, tool)
		}
	}
	return refs
}

// Count returns the number of registered tools.
func (r *Registry) Count(ctx context.Context) int {
	return len(r.All(ctx))
}

// Descriptors returns name and description for every cataloged tool in
// stable order, for the HTTP tool listing.
func (r *Registry) Descriptors(_ context.Context) []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
