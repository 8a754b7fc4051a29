package format

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.data")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLAMMPSPreflight_FullStyleByColumnCount(t *testing.T) {
	path := writeDataFile(t, "LAMMPS data file\n\nAtoms\n\n1 1 1 0.0 0.0 0.0 0.0\n")

	arg, requiresDialogue, err := LAMMPSPreflight(path)
	require.NoError(t, err)
	require.False(t, requiresDialogue)

	var parsed LAMMPSPreflightArg
	require.NoError(t, json.Unmarshal(arg, &parsed))
	require.Equal(t, "full", parsed.AtomStyle)
}

func TestLAMMPSPreflight_AtomicStyleByColumnCount(t *testing.T) {
	path := writeDataFile(t, "LAMMPS data file\n\nAtoms\n\n1 1 0.0 0.0 0.0\n")

	arg, requiresDialogue, err := LAMMPSPreflight(path)
	require.NoError(t, err)
	require.False(t, requiresDialogue)

	var parsed LAMMPSPreflightArg
	require.NoError(t, json.Unmarshal(arg, &parsed))
	require.Equal(t, "atomic", parsed.AtomStyle)
}

func TestLAMMPSPreflight_AmbiguousColumnCountRequestsDialogue(t *testing.T) {
	// 6 columns: could be "molecular" or "charge", no header annotation.
	path := writeDataFile(t, "LAMMPS data file\n\nAtoms\n\n1 1 1 0.0 0.0 0.0\n")

	arg, requiresDialogue, err := LAMMPSPreflight(path)
	require.NoError(t, err)
	require.True(t, requiresDialogue)
	require.Nil(t, arg)
}

func TestLAMMPSPreflight_HeaderCommentResolvesAmbiguity(t *testing.T) {
	path := writeDataFile(t, "LAMMPS data file\n\nAtoms # charge\n\n1 1 1 0.0 0.0 0.0\n")

	arg, requiresDialogue, err := LAMMPSPreflight(path)
	require.NoError(t, err)
	require.False(t, requiresDialogue)

	var parsed LAMMPSPreflightArg
	require.NoError(t, json.Unmarshal(arg, &parsed))
	require.Equal(t, "charge", parsed.AtomStyle)
}

func TestLAMMPSPreflight_UnrecognizedColumnCountRequestsDialogue(t *testing.T) {
	path := writeDataFile(t, "LAMMPS data file\n\nAtoms\n\n1 1 1 1 1 1 1 1 1\n")

	_, requiresDialogue, err := LAMMPSPreflight(path)
	require.NoError(t, err)
	require.True(t, requiresDialogue)
}
