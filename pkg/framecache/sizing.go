package framecache

import "github.com/openmd-labs/tcal/internal/memlimit"

const (
	minAvailableBytes = 4 << 20 // 4 MiB
	bytesPerCoord     = 4       // float32
	coordsPerAtom     = 3       // x, y, z
)

// SizeCapacity derives a slot count from a configured byte budget and the
// machine's physical RAM:
//
//	available_bytes   = clamp(configuredBytes, 4 MiB, physical_ram/4)
//	approx_frame_bytes = atomCount * 3 * 4
//	capacity           = min(numFrames, available_bytes / approx_frame_bytes)
//
// Returns at least 1 so callers always get a usable cache.
func SizeCapacity(numFrames, atomCount int, configuredBytes int64) int {
	ram := memlimit.PhysicalRAM()
	quarterRAM := int64(ram / 4)

	available := configuredBytes
	if available < minAvailableBytes {
		available = minAvailableBytes
	}

	if quarterRAM > 0 && available > quarterRAM {
		available = quarterRAM
	}

	approxFrameBytes := int64(atomCount) * coordsPerAtom * bytesPerCoord
	if approxFrameBytes < 1 {
		approxFrameBytes = 1
	}

	byMemory := available / approxFrameBytes
	if byMemory < 1 {
		byMemory = 1
	}

	capacity := int64(numFrames)
	if byMemory < capacity {
		capacity = byMemory
	}

	if capacity < 1 {
		capacity = 1
	}

	return int(capacity)
}

// DefaultCacheSizeBytes is the recommended frame cache budget, in bytes,
// used when no explicit configuration overrides it.
const DefaultCacheSizeBytes int64 = 512 << 20
