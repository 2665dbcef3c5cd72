package relations

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/btree"
	lru "github.com/hashicorp/golang-lru/v2"
)

// resultCacheSize bounds the number of (fromKind, toKind, input) traversal
// results kept per Graph. A Model's graph is immutable once built, so the
// cache never needs invalidation beyond the usual LRU eviction.
const resultCacheSize = 256

type resultCacheKey struct {
	from, to Kind
	input    string // raw roaring-bitmap bytes, used only as a comparable map key
}

// Kind names a node in the relation graph: one token per entity type
// participating in get_corresponding traversals (e.g. "Network", "Line").
// model assigns these; the relations package treats them as opaque keys.
type Kind string

type rawClosure func(*roaring.Bitmap) *roaring.Bitmap

type edge struct {
	to     Kind
	weight float64
	apply  rawClosure
	order  int // declaration order, for deterministic tie-break
}

// Graph is a small static weighted directed graph over entity kinds, used to
// answer get_corresponding queries by shortest weighted path. Built once per
// Model and never mutated afterwards.
type Graph struct {
	adjacency   map[Kind][]edge
	nextOrder   int
	mu          sync.Mutex // guards pathCache
	pathCache   map[Kind]map[Kind][]edge
	resultCache *lru.Cache[resultCacheKey, []byte]
}

// NewGraph returns an empty graph, ready for AddRelation calls.
func NewGraph() *Graph {
	cache, err := lru.New[resultCacheKey, []byte](resultCacheSize)
	if err != nil {
		// only returns an error for a non-positive size, which resultCacheSize never is.
		panic(err)
	}
	return &Graph{
		adjacency:   make(map[Kind][]edge),
		pathCache:   make(map[Kind]map[Kind][]edge),
		resultCache: cache,
	}
}

// AddRelation registers both directions of a relation between a and b with
// the given weight (1.0 for base relations, 1.9 for shortcuts, per spec).
func (g *Graph) AddRelation(a, b Kind, weight float64, forward, backward rawClosure) {
	g.addEdge(a, b, weight, forward)
	g.addEdge(b, a, weight, backward)
}

func (g *Graph) addEdge(from, to Kind, weight float64, apply rawClosure) {
	g.adjacency[from] = append(g.adjacency[from], edge{to: to, weight: weight, apply: apply, order: g.nextOrder})
	g.nextOrder++
}

// dijkstraItem is an entry in the open-set priority queue, ordered by
// distance and, on ties, by insertion order so node selection never depends
// on Go's randomized map iteration.
type dijkstraItem struct {
	dist float64
	seq  uint64
	kind Kind
}

func dijkstraLess(a, b dijkstraItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.seq < b.seq
}

// shortestPath runs Dijkstra from `from` to `to` over a btree-ordered open
// set (ties broken by insertion order, itself deterministic since each
// node's outgoing edges are relaxed in declaration order and a tying
// distance is never allowed to overwrite an already-settled predecessor).
func (g *Graph) shortestPath(from, to Kind) []edge {
	if from == to {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if cached, ok := g.pathCache[from][to]; ok {
		return cached
	}

	dist := map[Kind]float64{from: 0}
	prev := map[Kind]edge{}
	prevNode := map[Kind]Kind{}
	visited := map[Kind]bool{}

	open := btree.NewG(32, dijkstraLess)
	var seq uint64
	open.ReplaceOrInsert(dijkstraItem{dist: 0, seq: seq, kind: from})
	seq++

	for open.Len() > 0 {
		item, _ := open.DeleteMin()
		current := item.kind
		if visited[current] {
			continue
		}
		// a cheaper path to current was found after this entry was queued;
		// the stale entry is skipped, the fresher one already settles it.
		if d, ok := dist[current]; !ok || item.dist > d {
			continue
		}
		if current == to {
			break
		}
		visited[current] = true
		currentDist := dist[current]

		for _, e := range g.adjacency[current] {
			if visited[e.to] {
				continue
			}
			nd := currentDist + e.weight
			if existing, ok := dist[e.to]; !ok || nd < existing {
				dist[e.to] = nd
				prev[e.to] = edge{to: e.to, weight: e.weight, apply: e.apply, order: e.order}
				prevNode[e.to] = current
				open.ReplaceOrInsert(dijkstraItem{dist: nd, seq: seq, kind: e.to})
				seq++
			}
		}
	}

	if _, ok := dist[to]; !ok {
		g.cachePath(from, to, nil)
		return nil
	}

	// walk back from `to` to `from` using prevNode/prev, then reverse.
	var path []edge
	node := to
	for node != from {
		e := prev[node]
		path = append(path, e)
		node = prevNode[node]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	g.cachePath(from, to, path)
	return path
}

func (g *Graph) cachePath(from, to Kind, path []edge) {
	if g.pathCache[from] == nil {
		g.pathCache[from] = make(map[Kind][]edge)
	}
	g.pathCache[from][to] = path
}

// GetCorresponding walks the shortest weighted path from fromKind to toKind
// and applies each edge's closure to input in turn. T==U is the caller's
// responsibility to signal by passing identical kinds; when fromKind ==
// toKind the input is returned unchanged. Results are cached per (fromKind,
// toKind, input) since a Graph never changes once built.
func GetCorresponding[T, U any](g *Graph, fromKind, toKind Kind, input IdxSet[T]) IdxSet[U] {
	if fromKind == toKind {
		return fromBitmap[U](input.Raw().Clone())
	}

	inputBytes, err := input.Raw().ToBytes()
	if err == nil {
		key := resultCacheKey{from: fromKind, to: toKind, input: string(inputBytes)}
		if cached, ok := g.resultCache.Get(key); ok {
			out := roaring.New()
			if _, err := out.FromBuffer(cached); err == nil {
				return fromBitmap[U](out)
			}
		}
	}

	path := g.shortestPath(fromKind, toKind)
	current := input.Raw()
	for _, e := range path {
		current = e.apply(current)
	}

	if err == nil {
		if outBytes, err := current.ToBytes(); err == nil {
			key := resultCacheKey{from: fromKind, to: toKind, input: string(inputBytes)}
			g.resultCache.Add(key, outBytes)
		}
	}

	return fromBitmap[U](current)
}
