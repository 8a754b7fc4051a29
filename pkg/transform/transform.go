package transform

import (
	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

// Apply runs the post-decode transform on frame in place: recenter (only if
// mask is non-empty) followed by deperiodize (only if deperiodize is true
// and the frame carries a unit cell).
//
// mol supplies mass and structure partitioning; they are explicit inputs
// here rather than reached through caller state held deeper in the call
// stack, keeping this package free of any dependency on the façade.
func Apply(frame *trajio.FrameData, mol molecule.Molecule, mask molecule.AtomMask, deperiodizeFlag bool) {
	if !mask.IsEmpty() {
		recenter(frame, mol.Mass(), mask.Indices())
	}

	if deperiodizeFlag && frame.Header.Cell.Present {
		deperiodize(frame, mol.Structures())
	}
}
