package ltlfdfa

// mtbddConfig holds the tunable parameters of an MTBDD engine, set through
// functional options exactly as in dalzilio-rudd/config.go.
type mtbddConfig struct {
	nodeSize    int
	maxNodeSize int
	cacheSize   int
	cacheRatio  int
}

func defaultMTBDDConfig() mtbddConfig {
	return mtbddConfig{
		nodeSize:    1 << 12,
		maxNodeSize: 0, // unlimited
		cacheSize:   10000,
		cacheRatio:  0,
	}
}

// MTBDDOption configures an MTBDD engine at construction time.
type MTBDDOption func(*mtbddConfig)

// WithNodeTableSize sets the initial size of the node table.
func WithNodeTableSize(size int) MTBDDOption {
	return func(c *mtbddConfig) { c.nodeSize = size }
}

// WithMaxNodeTableSize bounds how large the node table is allowed to grow.
// A value of zero (the default) means no limit; exceeding a positive limit
// makes growNodeTable panic with errNodeTableExhaustedPanic (spec.md §7.2,
// a fatal but non-programmer failure).
func WithMaxNodeTableSize(size int) MTBDDOption {
	return func(c *mtbddConfig) { c.maxNodeSize = size }
}

// WithCacheSize sets the initial size of the shared operation caches.
func WithCacheSize(size int) MTBDDOption {
	return func(c *mtbddConfig) { c.cacheSize = size }
}

// WithCacheRatio sets the ratio (%) of cache entries per node-table slot
// used when resizing caches alongside the node table; 0 (the default)
// means caches never grow after creation.
func WithCacheRatio(ratio int) MTBDDOption {
	return func(c *mtbddConfig) { c.cacheRatio = ratio }
}

// growNodeTable doubles the node table, as in dalzilio-rudd's
// hkernel.go:noderesize, without the GC half of that function: a
// translation session never reclaims nodes (spec.md §3), so there is no
// mark-and-sweep pass here, only growth. With a positive cache ratio it
// also replaces the shared caches by empty ones sized from the new table.
func (m *MTBDD) growNodeTable() {
	oldSize := len(m.nodes)
	newSize := oldSize * 2
	if m.maxNodeSize > 0 && int32(newSize) > m.maxNodeSize {
		newSize = int(m.maxNodeSize)
	}
	if newSize <= oldSize {
		panic(errNodeTableExhaustedPanic{})
	}
	grown := make([]mtNode, newSize)
	copy(grown, m.nodes)
	m.nodes = grown
	if r := m.caches.ratio; r > 0 {
		m.caches = newMTBDDCaches(newSize*r/100, r)
	}
}

// errNodeTableExhaustedPanic is the panic value growNodeTable raises when
// the table cannot grow: by then we are deep in recursive apply/makeNode
// calls with no error return path. recoverExhaustion (session.go) turns it
// into ErrNodeTableExhausted for a function that defers it; no Session
// method defers it, so the panic reaches the caller of the Session method.
type errNodeTableExhaustedPanic struct{}
