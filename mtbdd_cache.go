package ltlfdfa

// cacheEntry2 is one slot of a binary-operation cache, generalizing
// dalzilio-rudd's cacheData (cache.go) to leaf-aware MTBDD operations: the
// operation tag distinguishes apply2 calls made with different leaf
// combiners (product's per-operator combine, tau's per-connective
// combine, ...) sharing the same table.
type cacheEntry2 struct {
	valid bool
	op    int32
	l, r  NodeRef
	res   NodeRef
}

// cache2 is a content-addressed, hint-only cache for binary operations: a
// miss is always tolerated (the caller recomputes), and pollution from an
// unrelated operation sharing a slot only costs a cache miss, never
// correctness (spec.md §5, "Cache invalidation").
type cache2 struct {
	table []cacheEntry2
}

func newCache2(size int) *cache2 {
	if size < 1 {
		size = 1
	}
	return &cache2{table: make([]cacheEntry2, size)}
}

func (c *cache2) slot(op int32, l, r NodeRef) int {
	h := uint64(op)*1000003 + uint64(l)*2654435761 + uint64(r)*40503
	return int(h % uint64(len(c.table)))
}

func (c *cache2) lookup(op int32, l, r NodeRef) (NodeRef, bool) {
	e := &c.table[c.slot(op, l, r)]
	if e.valid && e.op == op && e.l == l && e.r == r {
		return e.res, true
	}
	return 0, false
}

func (c *cache2) store(op int32, l, r NodeRef, res NodeRef) {
	i := c.slot(op, l, r)
	c.table[i] = cacheEntry2{valid: true, op: op, l: l, r: r, res: res}
}

func (c *cache2) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
}

// cacheEntry1 and cache1 mirror cache2 for unary operations (apply1 and
// the quantification walk; the minimizer's signature rewrite keeps its own
// call-local memo, see minimize.go).
type cacheEntry1 struct {
	valid bool
	op    int32
	n     NodeRef
	res   NodeRef
}

type cache1 struct {
	table []cacheEntry1
}

func newCache1(size int) *cache1 {
	if size < 1 {
		size = 1
	}
	return &cache1{table: make([]cacheEntry1, size)}
}

func (c *cache1) slot(op int32, n NodeRef) int {
	h := uint64(op)*2654435761 + uint64(n)*40503
	return int(h % uint64(len(c.table)))
}

func (c *cache1) lookup(op int32, n NodeRef) (NodeRef, bool) {
	e := &c.table[c.slot(op, n)]
	if e.valid && e.op == op && e.n == n {
		return e.res, true
	}
	return 0, false
}

func (c *cache1) store(op int32, n NodeRef, res NodeRef) {
	i := c.slot(op, n)
	c.table[i] = cacheEntry1{valid: true, op: op, n: n, res: res}
}

func (c *cache1) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
}

// mtbddCaches bundles the shared caches an MTBDD engine keeps live for its
// whole session (spec.md §5, "Shared caches live with the session").
type mtbddCaches struct {
	apply2    *cache2
	apply1    *cache1
	quantify1 *cache1
	ratio     int
}

func newMTBDDCaches(size, ratio int) mtbddCaches {
	if size <= 0 {
		size = 10000
	}
	return mtbddCaches{
		apply2:    newCache2(size),
		apply1:    newCache1(size),
		quantify1: newCache1(size),
		ratio:     ratio,
	}
}

// resetCaches wipes every shared cache. Nothing in the package calls it:
// the shared caches are fixed-size tables in which a new entry overwrites
// the one in its slot, so they never overflow.
func (m *MTBDD) resetCaches() {
	m.caches.apply2.reset()
	m.caches.apply1.reset()
	m.caches.quantify1.reset()
}

// dedicatedCacheSize implements the sizing formula of spec.md §4.A:
// ⌈numStates/4⌉·numAPs, clamped to [2^14, 2^27).
func dedicatedCacheSize(numStates, numAPs int) int {
	size := ((numStates + 3) / 4) * numAPs
	const lo = 1 << 14
	const hi = 1<<27 - 1
	if size < lo {
		size = lo
	}
	if size > hi {
		size = hi
	}
	return size
}

// dedicatedCache1 is a unary-operation cache owned by the operation that
// opens it; Close releases it (in Go, simply drops the reference) on every
// exit path, mirroring the open/close bracketing described in spec.md §5.
type dedicatedCache1 struct {
	*cache1
}

// OpenDedicatedCache1 allocates a fresh unary-operation cache sized for a
// translation with the given number of states and atomic propositions.
// Callers should `defer cache.Close()` immediately after opening it.
func OpenDedicatedCache1(numStates, numAPs int) *dedicatedCache1 {
	return &dedicatedCache1{cache1: newCache1(dedicatedCacheSize(numStates, numAPs))}
}

// Close releases a dedicated cache. It is safe to call multiple times.
func (d *dedicatedCache1) Close() {
	d.cache1 = nil
}
