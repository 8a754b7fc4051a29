package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitLoaderState_UnsupportedExtension(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{PDB: stubMolBackend})

	_, err := InitLoaderState("topology.foo", reg)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = InitLoaderState("noext", reg)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestInitLoaderState_SupportedExtensionNoPreflight(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{PDB: stubMolBackend, PDBTraj: stubTrajBackend})

	state, err := InitLoaderState("topology.pdb", reg)
	require.NoError(t, err)
	require.NotNil(t, state.Molecule)
	require.NotNil(t, state.Trajectory)
	require.False(t, state.RequiresDialogue)
	require.Empty(t, state.SniffedLAMMPSStyle)
}

func TestInitLoaderState_LAMMPSSurfacesSniffedStyle(t *testing.T) {
	reg := NewDefaultRegistry(DefaultBackends{LAMMPSData: stubMolBackend})

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.data")
	require.NoError(t, os.WriteFile(path, []byte("LAMMPS data file\n\nAtoms\n\n1 1 0.0 0.0 0.0\n"), 0o644))

	state, err := InitLoaderState(path, reg)
	require.NoError(t, err)
	require.False(t, state.RequiresDialogue)
	require.Equal(t, "atomic", state.SniffedLAMMPSStyle)
}

func TestInitLoaderState_EntryWithNoCapabilityIsUnsupported(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Entry{Name: "Empty", Extensions: []string{"empty"}})

	_, err := InitLoaderState("x.empty", reg)
	require.ErrorIs(t, err, ErrUnsupported)
}
