package include

import (
	"github.com/go-logr/logr"
)

// Edge is a forward include edge, carrying the directive that produced it.
type Edge struct {
	Source    string
	Target    string
	Directive Directive
}

// Graph models the workspace's include directives as a directed graph of
// document URIs.
type Graph struct {
	forward map[string][]Edge
	reverse map[string][]string
	log     logr.Logger
}

// New creates an empty include graph.
func New(log logr.Logger) *Graph {
	return &Graph{
		forward: make(map[string][]Edge),
		reverse: make(map[string][]string),
		log:     log,
	}
}

// Update replaces every edge sourced at uri with the edges derived from
// directives, and returns the set of URIs (including uri itself) whose
// reachable set may have changed as a result — candidates for lazy load.
func (g *Graph) Update(uri string, directives []Directive) []string {
	changed := map[string]struct{}{uri: {}}

	g.removeForward(uri)

	var edges []Edge
	for _, d := range directives {
		if !d.IsValid {
			continue
		}
		edges = append(edges, Edge{Source: uri, Target: d.ResolvedURI, Directive: d})
		g.reverse[d.ResolvedURI] = append(g.reverse[d.ResolvedURI], uri)
		changed[d.ResolvedURI] = struct{}{}
	}
	if len(edges) > 0 {
		g.forward[uri] = edges
	}

	out := make([]string, 0, len(changed))
	for u := range changed {
		out = append(out, u)
	}
	return out
}

// Remove drops forward edges sourced at uri and removes uri from every
// reverse entry pointing to it, in the same update.
func (g *Graph) Remove(uri string) {
	g.removeForward(uri)
	delete(g.reverse, uri)
}

func (g *Graph) removeForward(uri string) {
	for _, e := range g.forward[uri] {
		g.reverse[e.Target] = removeString(g.reverse[e.Target], uri)
	}
	delete(g.forward, uri)
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// DirectIncludes returns the URIs uri directly includes.
func (g *Graph) DirectIncludes(uri string) []string {
	edges := g.forward[uri]
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Target)
	}
	return out
}

// Includers returns the URIs that directly include uri.
func (g *Graph) Includers(uri string) []string {
	return append([]string(nil), g.reverse[uri]...)
}

// TransitiveIncludes returns every URI reachable from uri by following
// forward edges, excluding uri itself, in discovery order. It always
// terminates, even in the presence of cycles: encountering an
// already-visited node logs a warning and is skipped rather than
// re-traversed.
func (g *Graph) TransitiveIncludes(uri string) []string {
	visited := map[string]struct{}{uri: {}}
	var order []string

	var visit func(u string)
	visit = func(u string) {
		for _, target := range g.DirectIncludes(u) {
			if _, seen := visited[target]; seen {
				g.log.Info("include cycle detected", "from", u, "to", target)
				continue
			}
			visited[target] = struct{}{}
			order = append(order, target)
			visit(target)
		}
	}
	visit(uri)

	return order
}

// HasCycle reports whether an include cycle is reachable from uri (uri
// itself need not be on it), using a gray/black DFS coloring to detect a
// back edge.
func (g *Graph) HasCycle(uri string) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)

	var visit func(u string) bool
	visit = func(u string) bool {
		color[u] = gray
		for _, target := range g.DirectIncludes(u) {
			switch color[target] {
			case gray:
				return true
			case white:
				if visit(target) {
					return true
				}
			}
		}
		color[u] = black
		return false
	}

	return visit(uri)
}
