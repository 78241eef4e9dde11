// Package pathfind enumerates simple paths in string-keyed adjacency graphs.
//
// The walk is a recursive depth-first search with explicit backtracking over
// one shared visited set: a node is marked before its neighbors are explored
// and unmarked afterwards, so sibling branches may reuse it while no single
// path repeats a node.
package pathfind

// Graph maps a node name to its ordered neighbor names. A neighbor that is
// not itself a key is treated as a node with no outgoing edges.
type Graph map[string][]string

type walker struct {
	graph   Graph
	end     string
	opts    Options
	visited map[string]bool
	path    []string
	out     [][]string
	steps   int
}

// Enumerate returns every simple path from start to end, in discovery order.
// Neighbors are explored in the order the graph lists them.
//
// start == end yields the single trivial path. A missing start or end, or
// no connection between them, yields an empty result. The only error is the
// context's, when WithContext was supplied and the context ends mid-walk.
func Enumerate(g Graph, start, end string, opts ...Option) ([][]string, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if _, ok := g[start]; !ok {
		return [][]string{}, nil
	}
	if _, ok := g[end]; !ok {
		return [][]string{}, nil
	}
	if start == end {
		return [][]string{{start}}, nil
	}

	w := &walker{
		graph:   g,
		end:     end,
		opts:    o,
		visited: make(map[string]bool, len(g)),
		path:    make([]string, 0, len(g)),
		out:     [][]string{},
	}
	if err := w.walk(start); err != nil {
		return w.out, err
	}

	return w.out, nil
}

// ctxCheckInterval keeps context polling off the hot path.
const ctxCheckInterval = 1024

func (w *walker) walk(node string) error {
	w.steps++
	if w.steps%ctxCheckInterval == 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}
	}

	if w.full() {
		return nil
	}

	w.path = append(w.path, node)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	if node == w.end {
		p := make([]string, len(w.path))
		copy(p, w.path)
		w.out = append(w.out, p)
		return nil
	}

	// path holds depth+1 nodes; one more edge would exceed the limit.
	if w.opts.MaxDepth > 0 && len(w.path) > w.opts.MaxDepth {
		return nil
	}

	w.visited[node] = true
	defer delete(w.visited, node)

	for _, next := range w.graph[node] {
		if w.visited[next] {
			continue
		}
		if err := w.walk(next); err != nil {
			return err
		}
		if w.full() {
			return nil
		}
	}

	return nil
}

func (w *walker) full() bool {
	return w.opts.MaxPaths > 0 && len(w.out) >= w.opts.MaxPaths
}
