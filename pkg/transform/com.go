// Package transform implements the post-decode geometric transform:
// recenter-by-center-of-mass and deperiodization, applied in place to
// freshly decoded coordinates before they are cached.
package transform

import "github.com/openmd-labs/tcal/pkg/trajio"

// wrapOne maps a single coordinate into the periodic image nearest to
// reference, given the box extent along that axis.
func wrapOne(v, reference, extent float32) float32 {
	if extent == 0 {
		return v
	}

	d := v - reference
	for d > extent/2 {
		d -= extent
	}

	for d < -extent/2 {
		d += extent
	}

	return reference + d
}

// meanWeighted computes the mass-weighted mean position of the given atom
// indices. Used as the non-periodic center-of-mass fallback.
func meanWeighted(x, y, z, mass []float32, indices []int32) [3]float32 {
	var sumX, sumY, sumZ, sumM float64

	for _, idx := range indices {
		m := float64(mass[idx])
		sumX += float64(x[idx]) * m
		sumY += float64(y[idx]) * m
		sumZ += float64(z[idx]) * m
		sumM += m
	}

	if sumM == 0 {
		return [3]float32{}
	}

	return [3]float32{
		float32(sumX / sumM),
		float32(sumY / sumM),
		float32(sumZ / sumM),
	}
}

// computeCOMOrtho computes the periodic-aware center of mass for an
// orthorhombic cell: each atom is first wrapped to the image nearest the
// first atom in indices before mass-weighting, so a group that straddles a
// periodic boundary doesn't average to the box center by mistake.
func computeCOMOrtho(x, y, z, mass []float32, indices []int32, extent [3]float32) [3]float32 {
	ref := indices[0]
	refPos := [3]float32{x[ref], y[ref], z[ref]}

	var sumX, sumY, sumZ, sumM float64

	for _, idx := range indices {
		m := float64(mass[idx])
		wx := wrapOne(x[idx], refPos[0], extent[0])
		wy := wrapOne(y[idx], refPos[1], extent[1])
		wz := wrapOne(z[idx], refPos[2], extent[2])
		sumX += float64(wx) * m
		sumY += float64(wy) * m
		sumZ += float64(wz) * m
		sumM += m
	}

	if sumM == 0 {
		return refPos
	}

	return [3]float32{
		float32(sumX / sumM),
		float32(sumY / sumM),
		float32(sumZ / sumM),
	}
}

// deperiodizePoint wraps each component of p into the periodic image within
// half an extent of center (so into [0, extent] when center is extent/2).
func deperiodizePoint(p, center, extent [3]float32) [3]float32 {
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = wrapOne(p[i], center[i], extent[i])
	}

	return out
}

// ComputeCOM picks one of three strategies depending on the group and
// frame: a single atom's own position, a periodic-aware orthorhombic
// center of mass, or a plain mass-weighted mean.
func ComputeCOM(frame *trajio.FrameData, mass []float32, indices []int32) [3]float32 {
	if len(indices) == 1 {
		i := indices[0]

		return [3]float32{frame.X[i], frame.Y[i], frame.Z[i]}
	}

	if frame.Header.Cell.Present {
		extent := frame.Header.Cell.Extent()
		com := computeCOMOrtho(frame.X, frame.Y, frame.Z, mass, indices, extent)
		half := [3]float32{extent[0] / 2, extent[1] / 2, extent[2] / 2}

		return deperiodizePoint(com, half, extent)
	}

	return meanWeighted(frame.X, frame.Y, frame.Z, mass, indices)
}
