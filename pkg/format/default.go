package format

import "github.com/openmd-labs/tcal/pkg/trajio"

// DefaultBackends supplies the concrete backend factories for each
// supported extension. Any field may be left nil if the embedding
// application has not wired that format in this build; NewDefaultRegistry
// still builds the full, correctly-shaped table, it simply registers a nil
// factory for that capability, which MolLoaderFromExt/TrajLoaderFromExt
// report as "no backend" the same as an unregistered extension would.
//
// Concrete per-format parsers are out of scope for this module; this
// struct is the seam the embedding application plugs them into.
type DefaultBackends struct {
	PDB        trajio.MoleculeBackendFactory
	PDBTraj    trajio.TrajectoryBackendFactory
	GRO        trajio.MoleculeBackendFactory
	XTC        trajio.TrajectoryBackendFactory
	TRR        trajio.TrajectoryBackendFactory
	XYZ        trajio.MoleculeBackendFactory
	XYZTraj    trajio.TrajectoryBackendFactory
	CIF        trajio.MoleculeBackendFactory
	LAMMPSData trajio.MoleculeBackendFactory
}

// NewDefaultRegistry builds the registry for extension tokens pdb, gro,
// xtc, trr, xyz, xmol, arc, cif, data, cleanly separated into
// molecule-capable, trajectory-capable, or both.
func NewDefaultRegistry(b DefaultBackends) *Registry {
	r := NewRegistry()

	r.Register(Entry{
		Name:       "PDB",
		Extensions: []string{"pdb"},
		Molecule:   b.PDB,
		Trajectory: b.PDBTraj,
	})
	r.Register(Entry{
		Name:       "GRO",
		Extensions: []string{"gro"},
		Molecule:   b.GRO,
	})
	r.Register(Entry{
		Name:       "XTC",
		Extensions: []string{"xtc"},
		Trajectory: b.XTC,
	})
	r.Register(Entry{
		Name:       "TRR",
		Extensions: []string{"trr"},
		Trajectory: b.TRR,
	})
	// The XYZ family (xyz, xmol, arc) shares one molecule+trajectory pair.
	r.Register(Entry{
		Name:       "XYZ",
		Extensions: []string{"xyz", "xmol", "arc"},
		Molecule:   b.XYZ,
		Trajectory: b.XYZTraj,
	})
	r.Register(Entry{
		Name:       "mmCIF",
		Extensions: []string{"cif"},
		Molecule:   b.CIF,
	})
	r.Register(Entry{
		Name:       "LAMMPS data",
		Extensions: []string{"data"},
		Molecule:   b.LAMMPSData,
		Preflight:  LAMMPSPreflight,
	})

	return r
}
