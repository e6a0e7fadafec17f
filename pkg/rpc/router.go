package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Router resolves "namespace.name" paths to procedures.
type Router struct {
	namespaces map[string]Procedures
}

// NewRouter composes namespaces into a router. The table is copied; later
// changes to the argument do not affect the router.
func NewRouter(namespaces map[string]Procedures) *Router {
	r := &Router{namespaces: make(map[string]Procedures, len(namespaces))}
	for ns, procs := range namespaces {
		r.namespaces[ns] = maps.Clone(procs)
	}
	return r
}

// Lookup finds the procedure addressed by path.
func (r *Router) Lookup(path string) (Procedure, bool) {
	ns, name, ok := strings.Cut(path, ".")
	if !ok {
		return Procedure{}, false
	}

	procs, ok := r.namespaces[ns]
	if !ok {
		return Procedure{}, false
	}

	proc, ok := procs[name]
	if !ok || proc.Handler == nil {
		return Procedure{}, false
	}
	return proc, true
}

// Call forwards input to the procedure at path and returns its result or
// error untouched.
func (r *Router) Call(ctx context.Context, path string, input json.RawMessage) (any, error) {
	proc, ok := r.Lookup(path)
	if !ok {
		return nil, NewError(http.StatusNotFound, fmt.Sprintf("procedure not found: %s", path))
	}
	return proc.Handler(ctx, input)
}

// Namespaces returns the registered namespace names in sorted order.
func (r *Router) Namespaces() []string {
	return slices.Sorted(maps.Keys(r.namespaces))
}

// Paths returns every procedure path in sorted order.
func (r *Router) Paths() []string {
	var paths []string
	for ns, procs := range r.namespaces {
		for name := range procs {
			paths = append(paths, ns+"."+name)
		}
	}
	slices.Sort(paths)
	return paths
}
