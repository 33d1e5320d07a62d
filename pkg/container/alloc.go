package container

// AllocHooks mirrors the three allocator hooks the spec names as an external
// collaborator: an allocate-zeroed, an allocate-uninitialized, and a release
// call, each with C malloc/calloc/free semantics. Go's runtime already does
// the actual memory management; these hooks exist so callers can observe
// allocation traffic (accounting, fault injection in tests) the way the
// original library's hook table let embedders do.
type AllocHooks struct {
	AllocZeroed   func(size int) error
	AllocRaw      func(size int) error
	Release       func(size int)
}

func defaultAllocHooks() AllocHooks {
	return AllocHooks{
		AllocZeroed: func(int) error { return nil },
		AllocRaw:    func(int) error { return nil },
		Release:     func(int) {},
	}
}

// LogHook is the library's logging contract: library id, file id, line,
// error code, and three free-form context integers, with no return value.
type LogHook func(libraryID, fileID, line int, code ErrCode, ctx0, ctx1, ctx2 int64)

func defaultLogHook(int, int, int, ErrCode, int64, int64, int64) {}

// budget tracks an optional memory ceiling in bytes. A Store with no budget
// configured never rejects an allocation on memory-limit grounds.
type budget struct {
	limit int64 // <= 0 means unlimited
	used  int64
}

func (b *budget) reserve(n int64) error {
	if b == nil || b.limit <= 0 {
		return nil
	}
	if b.used+n > b.limit {
		return newErr(ErrMemoryLimit, "allocation would exceed configured memory budget")
	}
	b.used += n
	return nil
}

func (b *budget) release(n int64) {
	if b == nil {
		return
	}
	b.used -= n
	if b.used < 0 {
		b.used = 0
	}
}

// roughly how many bytes one node's worth of storage costs, for budget
// accounting purposes; deliberately approximate, as the spec only requires
// that the running total be consistent between reserve and release.
const approxNodeBytes = int64(NodeCapacity*8 + 32)

// BudgetContainer is the "small specially-tagged container" the spec uses to
// carry the memory ceiling through the same lifecycle rules as any other
// container: it is itself a Container, tagged typeTagBudget, whose sole
// integer child is the ceiling in bytes (or 0 for unlimited).
const typeTagBudget = 1<<30 + 1

// NewBudgetContainer creates a container of childrenCount 1 holding the
// ceiling value, tagged so it is recognizable, and returns an external
// handle to it. The container is not attached to any Store's budget.
func (s *Store) NewBudgetContainer(limitBytes int64) (*Handle, error) {
	h, err := s.Init()
	if err != nil {
		return nil, err
	}
	if err := s.SetTypeTag(h, typeTagBudget); err != nil {
		_ = s.Free(h)
		return nil, err
	}
	if err := s.AppendInt(h, int32(clampInt64ToInt32(limitBytes))); err != nil {
		_ = s.Free(h)
		return nil, err
	}
	return h, nil
}

func clampInt64ToInt32(v int64) int64 {
	if v > int64(maxInt32) {
		return int64(maxInt32)
	}
	if v < int64(minInt32) {
		return int64(minInt32)
	}
	return v
}
