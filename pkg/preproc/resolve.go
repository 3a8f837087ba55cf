package preproc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// pathDistance measures how far two paths are from their deepest common
// ancestor; used to rank include candidates.
func pathDistance(a, b string) (int, bool) {
	for ancestor := a; ; {
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
		if ancestor == "" || ancestor == "." {
			break
		}
		if strings.HasPrefix(b, ancestor+string(filepath.Separator)) {
			ra, _ := filepath.Rel(ancestor, a)
			rb, _ := filepath.Rel(ancestor, b)
			return len(strings.Split(ra, string(filepath.Separator))) +
				len(strings.Split(rb, string(filepath.Separator))), true
		}
	}
	return 0, false
}

// GuessFile resolves one include string against the known files: prefer a
// path ending with the include, then one next to the including file, then
// the closest by path distance; ties keep the full candidate list.
func GuessFile(currentPath, includePath string, allFiles map[string][]string) []string {
	includePath = filepath.Clean(includePath)
	base := filepath.Base(includePath)
	candidates, ok := allFiles[base]
	if !ok {
		return nil
	}
	if len(candidates) == 1 {
		return candidates
	}

	var matches []string
	for _, c := range candidates {
		if c != currentPath && strings.HasSuffix(c, string(filepath.Separator)+includePath) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches
	}

	parent := filepath.Dir(currentPath)
	matches = matches[:0]
	for _, c := range candidates {
		if c != currentPath && strings.HasPrefix(c, parent+string(filepath.Separator)) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches
	}

	distMin := int(^uint(0) >> 1)
	var closest []string
	for _, c := range candidates {
		if c == currentPath {
			continue
		}
		dist, ok := pathDistance(currentPath, c)
		if !ok {
			continue
		}
		switch {
		case dist < distMin:
			distMin = dist
			closest = append(closest[:0], c)
		case dist == distMin:
			closest = append(closest, c)
		}
	}
	sort.Strings(closest)
	return closest
}

// FixIncludes resolves every direct include to candidate files, collapses
// the strongly connected components of the resulting graph, and fills in
// the transitive include sets. Any member of a cycle sees the union of the
// cycle's files.
func FixIncludes(results *PreprocResults, allFiles map[string][]string) {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	paths := make(map[int64]string)

	nodeFor := func(path string) graph.Node {
		if id, ok := ids[path]; ok {
			return g.Node(id)
		}
		n := g.NewNode()
		g.AddNode(n)
		ids[path] = n.ID()
		paths[n.ID()] = path
		return n
	}

	files := make([]string, 0, len(results.Files))
	for path := range results.Files {
		files = append(files, path)
	}
	sort.Strings(files)

	for _, path := range files {
		pf := results.Files[path]
		from := nodeFor(path)
		for _, inc := range pf.DirectIncludes.Sorted() {
			for _, candidate := range GuessFile(path, inc, allFiles) {
				if candidate == path {
					fmt.Fprintf(os.Stderr, "Warning: possible self inclusion %s\n", path)
					continue
				}
				to := nodeFor(candidate)
				if from.ID() != to.ID() && g.Edge(from.ID(), to.ID()) == nil {
					g.SetEdge(g.NewEdge(from, to))
				}
			}
		}
	}

	// Collapse cycles: every node of a component maps to one group whose
	// member set is shared.
	sccs := topo.TarjanSCC(g)
	group := make(map[int64]int)
	members := make([][]string, len(sccs))
	for i, scc := range sccs {
		list := make([]string, 0, len(scc))
		for _, n := range scc {
			group[n.ID()] = i
			list = append(list, paths[n.ID()])
		}
		sort.Strings(list)
		members[i] = list
		if len(list) > 1 {
			fmt.Fprintln(os.Stderr, "Warning: possible include cycle:")
			for _, p := range list {
				fmt.Fprintf(os.Stderr, "  - %s\n", p)
			}
		}
	}

	// Group-level adjacency of the condensed DAG.
	adjacent := make(map[int]map[int]struct{})
	nodes := g.Nodes()
	for nodes.Next() {
		n := nodes.Node()
		to := g.From(n.ID())
		for to.Next() {
			a, b := group[n.ID()], group[to.Node().ID()]
			if a == b {
				continue
			}
			if adjacent[a] == nil {
				adjacent[a] = make(map[int]struct{})
			}
			adjacent[a][b] = struct{}{}
		}
	}

	// Transitive reachability per group, memoized.
	reach := make(map[int]StringSet)
	var visit func(int) StringSet
	visit = func(id int) StringSet {
		if r, ok := reach[id]; ok {
			return r
		}
		r := NewStringSet()
		reach[id] = r
		for next := range adjacent[id] {
			for _, p := range members[next] {
				r.Add(p)
			}
			for p := range visit(next) {
				r.Add(p)
			}
		}
		return r
	}

	for _, path := range files {
		pf := results.Files[path]
		id := group[ids[path]]
		// Cycle members see each other.
		if len(members[id]) > 1 {
			for _, p := range members[id] {
				if p != path {
					pf.IndirectIncludes.Add(p)
				}
			}
		}
		for p := range visit(id) {
			if p != path {
				pf.IndirectIncludes.Add(p)
			}
		}
	}
}
