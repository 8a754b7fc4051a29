// Package trajio defines the backend capability set this module consumes,
// and the façade capability set it exposes. Concrete per-format parsers
// (PDB/GRO/XTC/TRR/XYZ/mmCIF/LAMMPS) are out of scope for this module; only
// the narrow interface a backend must satisfy lives here.
package trajio

import "github.com/openmd-labs/tcal/pkg/molecule"

// UnitCell is a per-frame 3x3 basis plus a nonzero flag.
type UnitCell struct {
	Basis   [3][3]float32
	Present bool
}

// Extent derives the orthorhombic extent vector basis*(1,1,1), used for
// periodic recenter and deperiodization.
func (c UnitCell) Extent() [3]float32 {
	var e [3]float32
	for row := 0; row < 3; row++ {
		e[row] = c.Basis[row][0] + c.Basis[row][1] + c.Basis[row][2]
	}

	return e
}

// FrameHeader describes a decoded frame without its coordinate payload.
type FrameHeader struct {
	AtomCount int
	Time      float64
	Step      int64
	Cell      UnitCell
}

// FrameData is a fully decoded frame: header plus x/y/z coordinate arrays,
// each sized AtomCount.
type FrameData struct {
	Header FrameHeader
	X, Y, Z []float32
}

// EnsureCapacity grows X, Y, Z to atomCount, reusing existing backing arrays
// when possible. Frame Cache slots call this once at allocation and then
// decode in place.
func (f *FrameData) EnsureCapacity(atomCount int) {
	if cap(f.X) < atomCount {
		f.X = make([]float32, atomCount)
	} else {
		f.X = f.X[:atomCount]
	}

	if cap(f.Y) < atomCount {
		f.Y = make([]float32, atomCount)
	} else {
		f.Y = f.Y[:atomCount]
	}

	if cap(f.Z) < atomCount {
		f.Z = make([]float32, atomCount)
	} else {
		f.Z = f.Z[:atomCount]
	}
}

// MoleculeBackend parses a molecule topology from a file.
type MoleculeBackend interface {
	// Create parses path and returns the molecule, or an error.
	Create(path string) (molecule.Molecule, error)
	// Close releases any resources held by the backend.
	Close() error
}

// MoleculeBackendFactory constructs a MoleculeBackend for a given path. This
// is the shape the format registry dispatches to.
type MoleculeBackendFactory func(path string) (MoleculeBackend, error)

// TrajectoryBackend is the capability set a per-format trajectory parser
// exposes, and the shape the trajectory façade (package trajectory) wraps
// and re-exposes so a façade handle is drop-in wherever a backend is
// expected.
type TrajectoryBackend interface {
	// NumAtoms reports the atom count this trajectory was decoded against.
	NumAtoms() int
	// NumFrames reports the total number of frames.
	NumFrames() int
	// Header returns trajectory-level header information.
	Header() FrameHeader
	// FetchFrameData reads the raw, not-yet-decoded bytes for frame idx.
	FetchFrameData(idx int) ([]byte, error)
	// DecodeFrameData decodes blob (previously returned by FetchFrameData)
	// into out. out's X/Y/Z must already be sized via EnsureCapacity.
	DecodeFrameData(blob []byte, out *FrameData) error
	// Close releases any resources held by the backend.
	Close() error
}

// TrajectoryBackendFactory constructs a TrajectoryBackend for a given path.
type TrajectoryBackendFactory func(path string) (TrajectoryBackend, error)
