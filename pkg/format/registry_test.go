package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openmd-labs/tcal/pkg/trajio"
)

func stubMolBackend(path string) (trajio.MoleculeBackend, error) {
	return nil, nil
}

func stubTrajBackend(path string) (trajio.TrajectoryBackend, error) {
	return nil, nil
}

func TestDefaultRegistry_LooksUpByExtension(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{
		PDB:     stubMolBackend,
		PDBTraj: stubTrajBackend,
		XTC:     stubTrajBackend,
		XYZ:     stubMolBackend,
		XYZTraj: stubTrajBackend,
	})

	require.NotNil(t, reg.MolLoaderFromExt("pdb"))
	require.NotNil(t, reg.MolLoaderFromExt(".PDB"))
	require.NotNil(t, reg.TrajLoaderFromExt("xtc"))
	require.NotNil(t, reg.MolLoaderFromExt("xyz"))
	require.NotNil(t, reg.MolLoaderFromExt("xmol"))
	require.NotNil(t, reg.MolLoaderFromExt("arc"))

	require.Nil(t, reg.TrajLoaderFromExt("gro"), "GRO has no trajectory capability")
	require.Nil(t, reg.MolLoaderFromExt("unknown"))
}

func TestDefaultRegistry_LoaderNamesAndExtensions(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{PDB: stubMolBackend})

	require.Equal(t, 7, reg.LoaderCount())
	require.Contains(t, reg.LoaderNames(), "PDB")
	require.Contains(t, reg.LoaderNames(), "LAMMPS data")
}

func TestRegistry_NilFactoryBehavesAsUnregistered(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{}) // every factory nil

	require.Nil(t, reg.MolLoaderFromExt("pdb"))
	require.Nil(t, reg.TrajLoaderFromExt("pdb"))
}
