package format

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
)

// RegistryConfig describes registry overrides an embedding application can
// load from a human-edited config file: additional extensions for an
// existing entry, and forced LAMMPS atom-format overrides for paths whose
// sniff would otherwise request dialogue.
//
// The file format is JSON-with-comments (JSONC), parsed with
// github.com/tailscale/hujson.
type RegistryConfig struct {
	// ExtraExtensions maps an existing entry name (as registered, e.g.
	// "XYZ") to additional extensions that should route to it.
	ExtraExtensions map[string][]string `json:"extra_extensions,omitempty"`
	// LAMMPSAtomStyleOverrides maps a file path to a forced atom style,
	// bypassing the sniff in LAMMPSPreflight.
	LAMMPSAtomStyleOverrides map[string]string `json:"lammps_atom_style_overrides,omitempty"`
}

// LoadRegistryConfig reads and parses a JSONC registry config file at path.
// A missing file is not an error; it returns the zero RegistryConfig.
func LoadRegistryConfig(path string) (RegistryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RegistryConfig{}, nil
		}

		return RegistryConfig{}, fmt.Errorf("reading registry config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return RegistryConfig{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var cfg RegistryConfig

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return RegistryConfig{}, fmt.Errorf("invalid registry config %s: %w", path, err)
	}

	return cfg, nil
}

// Apply merges cfg into r: extra extensions are appended to the named
// entry (matched by Entry.Name, case-insensitively), and every entry that
// has a Preflight gets it wrapped so that a path listed in
// LAMMPSAtomStyleOverrides returns the forced style instead of running the
// original preflight.
func (cfg RegistryConfig) Apply(r *Registry) {
	for name, exts := range cfg.ExtraExtensions {
		for i := range r.entries {
			if strings.EqualFold(r.entries[i].Name, name) {
				r.entries[i].Extensions = append(r.entries[i].Extensions, exts...)
			}
		}
	}

	if len(cfg.LAMMPSAtomStyleOverrides) > 0 {
		overrides := cfg.LAMMPSAtomStyleOverrides

		for i := range r.entries {
			if r.entries[i].Preflight == nil {
				continue
			}

			original := r.entries[i].Preflight
			r.entries[i].Preflight = func(path string) ([]byte, bool, error) {
				if style, ok := overrides[path]; ok {
					arg, err := json.Marshal(LAMMPSPreflightArg{AtomStyle: style})

					return arg, false, err
				}

				return original(path)
			}
		}
	}
}
