package transform

import "github.com/openmd-labs/tcal/pkg/trajio"

// recenter translates every atom in frame so that the center of mass of the
// atoms in indices lies at the box center (periodic) or the origin
// (non-periodic).
//
// Translation is applied left-to-right over the coordinate arrays with no
// parallelism, so repeated calls with identical inputs are byte-identical.
func recenter(frame *trajio.FrameData, mass []float32, indices []int32) {
	com := ComputeCOM(frame, mass, indices)

	var translation [3]float32

	if frame.Header.Cell.Present {
		extent := frame.Header.Cell.Extent()
		translation = [3]float32{
			extent[0]/2 - com[0],
			extent[1]/2 - com[1],
			extent[2]/2 - com[2],
		}
	} else {
		translation = [3]float32{-com[0], -com[1], -com[2]}
	}

	for i := range frame.X {
		frame.X[i] += translation[0]
		frame.Y[i] += translation[1]
		frame.Z[i] += translation[2]
	}
}
