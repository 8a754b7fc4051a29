// Package format implements the format-dispatch registry and the
// loader-state builder: routing a file path to a suitable molecule and/or
// trajectory backend.
package format

import (
	"strings"

	"github.com/openmd-labs/tcal/pkg/trajio"
)

// PreflightFunc inspects a file before a backend is instantiated and may
// encode extra arguments the backend needs.
//
// A nil arg with requiresDialogue true means the registry could not decide
// automatically and the caller (the GUI, out of scope here) must ask the
// user.
type PreflightFunc func(path string) (arg []byte, requiresDialogue bool, err error)

// Entry describes one registered format.
type Entry struct {
	// Name is the human-readable, UI-visible loader name.
	Name string
	// Extensions is the set of file extensions this entry handles, without
	// leading dots, compared case-insensitively.
	Extensions []string
	// Molecule is non-nil if this format can produce a molecule.
	Molecule trajio.MoleculeBackendFactory
	// Trajectory is non-nil if this format can produce a trajectory.
	Trajectory trajio.TrajectoryBackendFactory
	// Preflight runs before backend construction; may be nil (no-op).
	Preflight PreflightFunc
}

// Registry maps file extensions to molecule and/or trajectory backends.
//
// Lookup is a linear scan over a small table; the entry count stays small
// enough that this beats the bookkeeping of a map.
type Registry struct {
	entries []Entry
}

// NewRegistry builds an empty registry. Use NewDefaultRegistry for the
// built-in extension table.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an entry to the registry.
func (r *Registry) Register(e Entry) {
	r.entries = append(r.entries, e)
}

// LoaderCount returns the number of registered entries.
func (r *Registry) LoaderCount() int {
	return len(r.entries)
}

// LoaderNames returns the UI-visible name of every registered entry.
func (r *Registry) LoaderNames() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}

	return names
}

// LoaderExtensions returns the extension list of every registered entry, in
// the same order as LoaderNames.
func (r *Registry) LoaderExtensions() [][]string {
	exts := make([][]string, len(r.entries))
	for i, e := range r.entries {
		exts[i] = e.Extensions
	}

	return exts
}

// normalizeExt lower-cases ext and strips a leading dot, if any.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	return ext
}

func matchExt(entry Entry, ext string) bool {
	for _, e := range entry.Extensions {
		for _, tok := range strings.Split(e, ";") {
			if normalizeExt(strings.TrimSpace(tok)) == ext {
				return true
			}
		}
	}

	return false
}

// MolLoaderFromExt returns the molecule backend factory registered for ext,
// or nil if none matches. ext is compared case-insensitively and may be
// given with or without a leading dot.
func (r *Registry) MolLoaderFromExt(ext string) trajio.MoleculeBackendFactory {
	ext = normalizeExt(ext)

	for _, e := range r.entries {
		if e.Molecule != nil && matchExt(e, ext) {
			return e.Molecule
		}
	}

	return nil
}

// TrajLoaderFromExt returns the trajectory backend factory registered for
// ext, or nil if none matches.
func (r *Registry) TrajLoaderFromExt(ext string) trajio.TrajectoryBackendFactory {
	ext = normalizeExt(ext)

	for _, e := range r.entries {
		if e.Trajectory != nil && matchExt(e, ext) {
			return e.Trajectory
		}
	}

	return nil
}

// entryFor returns the registered entry matching ext, or the zero Entry and
// false if none matches. Used internally by the loader-state builder to run
// preflight hooks.
func (r *Registry) entryFor(ext string) (Entry, bool) {
	ext = normalizeExt(ext)

	for _, e := range r.entries {
		if matchExt(e, ext) {
			return e, true
		}
	}

	return Entry{}, false
}
