package format

import (
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/openmd-labs/tcal/pkg/trajio"
)

// ErrUnsupported is returned when a path's extension is missing or
// unrecognized by the registry.
var ErrUnsupported = errors.New("format: extension not supported")

// LoaderState is the ephemeral result of consulting the registry for a
// path, produced by InitLoaderState.
type LoaderState struct {
	// Molecule is the molecule backend factory chosen for this path, or
	// nil if the extension has no molecule-capable entry.
	Molecule trajio.MoleculeBackendFactory
	// Trajectory is the trajectory backend factory chosen for this path,
	// or nil if the extension has no trajectory-capable entry.
	Trajectory trajio.TrajectoryBackendFactory
	// Arg is the opaque backend-argument blob produced by a preflight
	// hook, or nil.
	Arg []byte
	// RequiresDialogue signals the caller (the GUI, out of scope here)
	// must ask the user to disambiguate before committing to this state,
	// e.g. an unrecognized LAMMPS atom-format.
	RequiresDialogue bool
	// SniffedLAMMPSStyle is the atom-format the LAMMPS preflight detected,
	// if any; empty otherwise.
	SniffedLAMMPSStyle string
}

// InitLoaderState computes path's extension, consults reg for both a
// molecule and a trajectory backend, runs whichever preflight the matching
// entry declares, and returns the populated state.
//
// Returns ErrUnsupported, with no side effects, if the extension is
// missing or no registered entry matches it.
func InitLoaderState(path string, reg *Registry) (LoaderState, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return LoaderState{}, ErrUnsupported
	}

	entry, ok := reg.entryFor(ext)
	if !ok {
		return LoaderState{}, ErrUnsupported
	}

	state := LoaderState{
		Molecule:   entry.Molecule,
		Trajectory: entry.Trajectory,
	}

	if state.Molecule == nil && state.Trajectory == nil {
		return LoaderState{}, ErrUnsupported
	}

	if entry.Preflight != nil {
		arg, requiresDialogue, err := entry.Preflight(path)
		if err != nil {
			return LoaderState{}, err
		}

		state.Arg = arg
		state.RequiresDialogue = requiresDialogue

		if arg != nil {
			var lammpsArg LAMMPSPreflightArg
			if json.Unmarshal(arg, &lammpsArg) == nil {
				state.SniffedLAMMPSStyle = lammpsArg.AtomStyle
			}
		}
	}

	return state, nil
}
