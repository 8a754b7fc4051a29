package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

func unitMassMolecule(atomCount int) molecule.Molecule {
	mass := make([]float32, atomCount)
	for i := range mass {
		mass[i] = 1
	}

	return molecule.NewStaticMolecule(mass, molecule.StructureIndex{
		Offsets: []int32{0, int32(atomCount)},
		Indices: sequentialIndices(atomCount),
	})
}

func sequentialIndices(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}

	return out
}

func TestApply_NoOpWhenMaskEmptyAndDeperiodizeOff(t *testing.T) {
	mol := unitMassMolecule(3)
	mask := molecule.NewAtomMask(3)

	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 3},
		X:       []float32{1, 2, 3},
		Y:       []float32{4, 5, 6},
		Z:       []float32{7, 8, 9},
	}

	beforeX := append([]float32(nil), frame.X...)
	beforeY := append([]float32(nil), frame.Y...)

	Apply(frame, mol, mask, false)

	require.Equal(t, beforeX, frame.X)
	require.Equal(t, beforeY, frame.Y)
}

func TestRecenter_SingleAtomNonPeriodic(t *testing.T) {
	mol := unitMassMolecule(1)
	mask := molecule.NewAtomMask(1)
	mask.Set(0)

	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 1},
		X:       []float32{5},
		Y:       []float32{-3},
		Z:       []float32{2},
	}

	Apply(frame, mol, mask, false)

	require.InDelta(t, 0, frame.X[0], 1e-6)
	require.InDelta(t, 0, frame.Y[0], 1e-6)
	require.InDelta(t, 0, frame.Z[0], 1e-6)
}

func TestRecenter_SingleAtomPeriodicLandsAtBoxCenter(t *testing.T) {
	mol := unitMassMolecule(1)
	mask := molecule.NewAtomMask(1)
	mask.Set(0)

	cell := trajio.UnitCell{
		Basis:   [3][3]float32{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}},
		Present: true,
	}

	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 1, Cell: cell},
		X:       []float32{2},
		Y:       []float32{2},
		Z:       []float32{2},
	}

	Apply(frame, mol, mask, false)

	require.InDelta(t, 5, frame.X[0], 1e-5)
	require.InDelta(t, 5, frame.Y[0], 1e-5)
	require.InDelta(t, 5, frame.Z[0], 1e-5)
}

func TestRecenter_GroupTranslatesTogether(t *testing.T) {
	mol := unitMassMolecule(2)
	mask := molecule.NewAtomMask(2)
	mask.Set(0)
	mask.Set(1)

	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 2},
		X:       []float32{0, 2},
		Y:       []float32{0, 0},
		Z:       []float32{0, 0},
	}

	Apply(frame, mol, mask, false)

	// mean-x was 1; translation is -1, so 0 -> -1 and 2 -> 1.
	require.InDelta(t, -1, frame.X[0], 1e-6)
	require.InDelta(t, 1, frame.X[1], 1e-6)
}

func TestDeperiodize_TwoAtomChainAcrossBoundary(t *testing.T) {
	structures := molecule.StructureIndex{
		Offsets: []int32{0, 2},
		Indices: []int32{0, 1},
	}
	mol := molecule.NewStaticMolecule([]float32{1, 1}, structures)
	mask := molecule.NewAtomMask(2) // empty: don't recenter, only deperiodize

	cell := trajio.UnitCell{
		Basis:   [3][3]float32{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}},
		Present: true,
	}

	// Atom 0 sits near one edge, atom 1 has wrapped to the opposite edge,
	// but physically they are adjacent across the periodic boundary.
	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 2, Cell: cell},
		X:       []float32{9.5, 0.5},
		Y:       []float32{0, 0},
		Z:       []float32{0, 0},
	}

	Apply(frame, mol, mask, true)

	// Atom 1 should unwrap to 10.5, one unit from atom 0 across the
	// boundary rather than 9 units away.
	require.InDelta(t, 9.5, frame.X[0], 1e-5)
	require.InDelta(t, 10.5, frame.X[1], 1e-5)
}

func TestDeperiodize_SkippedWithoutCell(t *testing.T) {
	structures := molecule.StructureIndex{Offsets: []int32{0, 2}, Indices: []int32{0, 1}}
	mol := molecule.NewStaticMolecule([]float32{1, 1}, structures)
	mask := molecule.NewAtomMask(2)

	frame := &trajio.FrameData{
		Header: trajio.FrameHeader{AtomCount: 2},
		X:       []float32{9.5, 0.5},
		Y:       []float32{0, 0},
		Z:       []float32{0, 0},
	}

	Apply(frame, mol, mask, true)

	// No cell present: deperiodize must not run even though requested.
	require.Equal(t, float32(9.5), frame.X[0])
	require.Equal(t, float32(0.5), frame.X[1])
}

func TestApply_Deterministic(t *testing.T) {
	mol := unitMassMolecule(4)
	mask := molecule.NewAtomMask(4)
	mask.Set(1)
	mask.Set(3)

	build := func() *trajio.FrameData {
		return &trajio.FrameData{
			Header: trajio.FrameHeader{AtomCount: 4},
			X:       []float32{1, 2, 3, 4},
			Y:       []float32{4, 3, 2, 1},
			Z:       []float32{0, 0, 0, 0},
		}
	}

	a := build()
	b := build()

	Apply(a, mol, mask, false)
	Apply(b, mol, mask, false)

	require.Equal(t, a.X, b.X)
	require.Equal(t, a.Y, b.Y)
}
