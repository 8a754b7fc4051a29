package framecache

import (
	"sync"

	"github.com/openmd-labs/tcal/pkg/trajio"
)

// slot holds one cached frame plus the bookkeeping the cache needs to
// reserve, populate and evict it.
//
// Fields are only safe to read/write while the owning Cache's index mutex is
// held (reserved, populated, index, clockRef) or while mu is held
// (everything else, including Data). See cache.go for the locking
// discipline.
type slot struct {
	mu sync.RWMutex

	// reserved is true from the moment a caller wins find-or-reserve for an
	// index until Populate or Abort is called.
	reserved bool
	// populated is true once Data holds a fully decoded, transformed frame.
	populated bool
	// index is the frame index this slot currently holds or is decoding.
	// Meaningless unless reserved or populated is true.
	index int
	// clockRef is the CLOCK reference bit, set on every access and cleared
	// by the eviction sweep.
	clockRef bool

	// Data is the decoded frame. Mutating it requires holding mu (as a
	// writer during population, implicitly as the sole owner while
	// reserved-not-yet-populated).
	Data trajio.FrameData
}

// Handle is returned by Cache.FindOrReserve. Exactly one of Release (hit
// path) or Populate/Abort (miss path) must be called exactly once.
type Handle struct {
	s         *slot
	isWriter  bool
	released  bool
}

// Data returns the frame data this handle is holding. For a miss (Populate
// path) the caller decodes into this struct in place before calling
// Populate.
func (h *Handle) Data() *trajio.FrameData {
	return &h.s.Data
}

// Release ends a read-only (cache hit) reservation.
func (h *Handle) Release() {
	if h.released {
		return
	}

	h.released = true
	h.s.mu.RUnlock()
}

// Populate marks a reserved slot as populated with the data now sitting in
// Data(), and releases the exclusive reservation so subsequent callers can
// read it. Must only be called on a miss-path Handle (IsMiss() == true).
func (h *Handle) Populate() {
	if h.released || !h.isWriter {
		return
	}

	h.released = true
	h.s.reserved = false
	h.s.populated = true
	h.s.mu.Unlock()
}

// Abort clears a failed reservation so future callers may retry the decode.
// Must only be called on a miss-path Handle (IsMiss() == true).
func (h *Handle) Abort(c *Cache) {
	if h.released || !h.isWriter {
		return
	}

	h.released = true
	h.s.reserved = false
	h.s.populated = false

	c.mu.Lock()
	if c.byIndex[h.s.index] == h.s {
		delete(c.byIndex, h.s.index)
	}
	c.mu.Unlock()

	h.s.mu.Unlock()
}

// IsMiss reports whether this handle represents a cache miss that the
// caller must populate (or abort) rather than a hit it may simply read.
func (h *Handle) IsMiss() bool {
	return h.isWriter
}
