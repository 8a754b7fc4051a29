// Package memlimit reports physical RAM so callers can clamp cache sizing
// decisions to it.
package memlimit

// fallbackPhysicalRAM is used on platforms where the real syscall is
// unavailable or fails; chosen so the clamp in framecache.SizeCapacity still
// produces a sane, conservative cache size rather than failing outright.
const fallbackPhysicalRAM = 2 << 30 // 2 GiB

// PhysicalRAM returns the total physical RAM of the host in bytes, or
// fallbackPhysicalRAM if it cannot be determined.
func PhysicalRAM() uint64 {
	if v, ok := physicalRAM(); ok {
		return v
	}

	return fallbackPhysicalRAM
}
