package transform

import (
	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

// deperiodize unwraps each connected structure so its atoms are spatially
// contiguous with respect to the cell. Only runs when a cell is present;
// the caller (Apply) is responsible for gating on the deperiodize flag.
//
// Each structure is unwrapped independently of the others, anchored on its
// own first atom, so structures that are not bonded to each other are never
// pulled together by this step.
func deperiodize(frame *trajio.FrameData, structures molecule.StructureIndex) {
	extent := frame.Header.Cell.Extent()

	for s := 0; s < structures.NumStructures(); s++ {
		atoms := structures.Atoms(s)
		if len(atoms) == 0 {
			continue
		}

		anchor := atoms[0]
		ref := [3]float32{frame.X[anchor], frame.Y[anchor], frame.Z[anchor]}

		for _, idx := range atoms {
			frame.X[idx] = wrapOne(frame.X[idx], ref[0], extent[0])
			frame.Y[idx] = wrapOne(frame.Y[idx], ref[1], extent[1])
			frame.Z[idx] = wrapOne(frame.Z[idx], ref[2], extent[2])
		}
	}
}
