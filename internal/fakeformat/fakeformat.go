// Package fakeformat provides deterministic synthetic molecule and
// trajectory backends standing in for the real per-format parsers
// (PDB/GRO/XTC/...), which are out of scope for this module. Used by tests
// and the cmd/tcal-bench demo.
package fakeformat

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

// Molecule builds a deterministic molecule with the given atom count and
// chain-bonded connectivity: atoms are grouped into chains of chainLen
// atoms, each chain forming one connected structure. Every atom has unit
// mass unless masses is non-nil.
func Molecule(atomCount, chainLen int, masses []float32) molecule.Molecule {
	if masses == nil {
		masses = make([]float32, atomCount)
		for i := range masses {
			masses[i] = 1
		}
	}

	if chainLen < 1 {
		chainLen = atomCount
	}

	var offsets []int32
	var indices []int32

	offsets = append(offsets, 0)

	for start := 0; start < atomCount; start += chainLen {
		end := start + chainLen
		if end > atomCount {
			end = atomCount
		}

		for i := start; i < end; i++ {
			indices = append(indices, int32(i))
		}

		offsets = append(offsets, int32(len(indices)))
	}

	return molecule.NewStaticMolecule(masses, molecule.StructureIndex{Offsets: offsets, Indices: indices})
}

// Trajectory is a deterministic synthetic trajectory backend: frame f,
// atom a has position (a, f, 0) before any transform is applied, so tests
// can assert on the exact coordinates a real backend would have produced.
type Trajectory struct {
	atomCount int
	numFrames int
	cell      trajio.UnitCell

	mu          sync.Mutex
	decodeCalls map[int]int // frame index -> times DecodeFrameData has run

	// FailDecode, if set, makes decoding this one frame index fail once
	// (then clears itself), to exercise the Abort/retry path.
	FailDecode int32 // frame index, or -1 for none; use atomic access
}

// NewTrajectory builds a synthetic trajectory with the given atom/frame
// counts. cell may be the zero UnitCell (Present: false) for a non-periodic
// trajectory.
func NewTrajectory(atomCount, numFrames int, cell trajio.UnitCell) *Trajectory {
	return &Trajectory{
		atomCount:   atomCount,
		numFrames:   numFrames,
		cell:        cell,
		decodeCalls: make(map[int]int),
		FailDecode:  -1,
	}
}

// NumAtoms implements trajio.TrajectoryBackend.
func (t *Trajectory) NumAtoms() int { return t.atomCount }

// NumFrames implements trajio.TrajectoryBackend.
func (t *Trajectory) NumFrames() int { return t.numFrames }

// Header implements trajio.TrajectoryBackend.
func (t *Trajectory) Header() trajio.FrameHeader {
	return trajio.FrameHeader{AtomCount: t.atomCount, Cell: t.cell}
}

// FetchFrameData implements trajio.TrajectoryBackend: it emits the raw
// 8-byte frame index, matching the façade's own blob shape closely enough
// to exercise the full decode path without a real wire format.
func (t *Trajectory) FetchFrameData(idx int) ([]byte, error) {
	if idx < 0 || idx >= t.numFrames {
		return nil, fmt.Errorf("fakeformat: frame %d out of range", idx)
	}

	blob := make([]byte, 8)
	binary.LittleEndian.PutUint64(blob, uint64(idx))

	return blob, nil
}

// DecodeFrameData implements trajio.TrajectoryBackend: it fills out with
// the deterministic coordinates for the frame index encoded in blob, and
// records that the decode ran (DecodeCallCount).
func (t *Trajectory) DecodeFrameData(blob []byte, out *trajio.FrameData) error {
	idx := int(binary.LittleEndian.Uint64(blob))

	t.mu.Lock()
	t.decodeCalls[idx]++
	t.mu.Unlock()

	if atomic.LoadInt32(&t.FailDecode) == int32(idx) {
		atomic.StoreInt32(&t.FailDecode, -1)

		return fmt.Errorf("fakeformat: injected decode failure for frame %d", idx)
	}

	out.Header = trajio.FrameHeader{AtomCount: t.atomCount, Time: float64(idx), Step: int64(idx), Cell: t.cell}
	out.EnsureCapacity(t.atomCount)

	for a := 0; a < t.atomCount; a++ {
		out.X[a] = float32(a)
		out.Y[a] = float32(idx)
		out.Z[a] = 0
	}

	return nil
}

// Close implements trajio.TrajectoryBackend.
func (t *Trajectory) Close() error { return nil }

// DecodeCallCount returns how many times DecodeFrameData has actually run
// for the given frame index, for asserting the "decode at most once between
// evictions" invariant.
func (t *Trajectory) DecodeCallCount(idx int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.decodeCalls[idx]
}

var _ trajio.TrajectoryBackend = (*Trajectory)(nil)
