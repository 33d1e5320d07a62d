// Package container implements the chunked-sequence storage layer, the
// reference manager, and the reachability collector for a heterogeneous,
// reference-counted, cycle-safe sequence of 32-bit integers and nested
// sequences of the same type.
package container

import "math"

// NodeCapacity is the compile-time fixed capacity of a single chunk, chosen
// (per the spec) proportional to the expected sqrt(N) of a typical sequence
// so that indexing stays O(sqrt(N)). 64 matches the "larger" build profile;
// a 16-capacity build is the other historical profile and would only ever
// change this one constant.
const NodeCapacity = 64

// MaxChildrenHardLimit is the largest value MaxChildren may ever take: the
// positive range of the int32 child-index type the codec serializes counts
// as.
const MaxChildrenHardLimit = math.MaxInt32

const (
	maxInt32 = math.MaxInt32
	minInt32 = math.MinInt32
)

// Kind distinguishes what a node, or the slot at a given index, holds.
type Kind int

const (
	// sentinelKind marks the head/tail nodes; never observed by callers.
	sentinelKind Kind = iota
	// Int marks a node (or slot) holding 32-bit signed integers.
	Int
	// List marks a node (or slot) holding child container handles.
	List
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case List:
		return "List"
	default:
		return "sentinel"
	}
}

// node is a fixed-capacity, homogeneous chunk of children.
type node struct {
	kind  Kind
	count int
	ints  [NodeCapacity]int32
	lists [NodeCapacity]*Handle
	prev  *node
	next  *node
}

// Container is the mutable recursive value at the heart of the library.
type Container struct {
	childrenCount int
	typeTag       int64
	userTag       int64

	head *node // sentinel
	tail *node // sentinel

	// refsHead/refsTail form an intrusive list of every Handle currently
	// targeting this container, external and internal alike. Spec.md §3
	// describes "external_refs" as holding only external handles, but
	// §4.C's traversal needs to find, for an unreachable candidate, the
	// containers that hold it internally too -- exactly what
	// original_source/trotLib's single per-list refList does. This
	// unified list is that refList; externalRefs (refs.go) is the
	// filtered view that keeps the §8 invariant ("external_refs(C)
	// enumerates exactly the external handles") true of the exposed API.
	refsHead *Handle
	refsTail *Handle

	// bytesReserved is the running total charged against the Store's memory
	// budget for this container's nodes; released in full when the
	// container is freed.
	bytesReserved int64

	// transient collector/encoder scratch; must be zero outside of the
	// operation that uses it.
	reachable           bool
	visited             bool
	prevOnPath          *Container
	freeChainNext       *Container
	onFreeChain         bool
	encodingParent      *Container
	encodingChildNumber int64
}

// Handle is a two-word external/internal pointer pair: the container it
// targets, and the container whose node slot holds it (nil means external -
// held directly by a caller rather than nested inside another container).
type Handle struct {
	pointsTo *Container
	parent   *Container // nil => external
	prevRef  *Handle    // target's incoming-refs linkage, for external and internal handles alike
	nextRef  *Handle
	freed    bool
}

// IsExternal reports whether h is an external handle (parent == external
// marker) as opposed to one currently owned by a node slot.
func (h *Handle) IsExternal() bool {
	return h != nil && h.parent == nil
}

// Store is the allocation/configuration context threaded through every
// mutating operation: allocator hooks, an optional memory budget, and a
// logging hook. A zero-value Store is usable and imposes no limits.
type Store struct {
	alloc  AllocHooks
	log    LogHook
	budget *budget
}

// NewStore creates a Store with default (no-op) hooks and no memory limit.
func NewStore() *Store {
	return &Store{alloc: defaultAllocHooks(), log: defaultLogHook}
}

// WithAllocHooks overrides the allocator hooks.
func (s *Store) WithAllocHooks(h AllocHooks) *Store {
	s.alloc = h
	return s
}

// WithLogHook overrides the logging hook.
func (s *Store) WithLogHook(h LogHook) *Store {
	if h != nil {
		s.log = h
	}
	return s
}

// WithMemoryLimit imposes a ceiling, in bytes, on this Store's cumulative
// node allocations. A limit <= 0 means unlimited.
func (s *Store) WithMemoryLimit(limitBytes int64) *Store {
	s.budget = &budget{limit: limitBytes}
	return s
}

func (s *Store) logf(code ErrCode, ctx0, ctx1, ctx2 int64) {
	if s.log != nil {
		s.log(0, 0, 0, code, ctx0, ctx1, ctx2)
	}
}
