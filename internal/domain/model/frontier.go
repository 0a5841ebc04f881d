package model

// Frontier tracks one pagination walk: the pages already fetched and every
// URL discovered so far, in discovery order. It is not safe for concurrent use.
type Frontier struct {
	visited    map[string]struct{}
	discovered map[string]struct{}
	order      []string
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		visited:    make(map[string]struct{}),
		discovered: make(map[string]struct{}),
		order:      make([]string, 0),
	}
}

// Visited reports whether u was fetched during this walk.
func (f *Frontier) Visited(u string) bool {
	_, ok := f.visited[u]
	return ok
}

// Visit marks u as fetched and discovers it.
func (f *Frontier) Visit(u string) {
	f.visited[u] = struct{}{}
	f.Discover(u)
}

// Discover records u unless it is already known. It reports whether u was new.
func (f *Frontier) Discover(u string) bool {
	if u == "" {
		return false
	}
	if _, ok := f.discovered[u]; ok {
		return false
	}
	f.discovered[u] = struct{}{}
	f.order = append(f.order, u)
	return true
}

// Discovered returns a copy of every discovered URL in discovery order.
func (f *Frontier) Discovered() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// VisitedCount returns how many pages were fetched.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}
