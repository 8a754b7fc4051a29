package format

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// lammpsAtomStyle is a LAMMPS "Atoms" section style this preflight can
// recognize by column count. This is a sniff, not a parse: the real LAMMPS
// data-file parser (out of scope for this module) still does the actual
// column interpretation.
type lammpsAtomStyle struct {
	Name    string
	Columns int
}

// knownLAMMPSAtomStyles lists the styles distinguishable purely by the
// number of whitespace-separated fields on the first Atoms line, ordered
// from most to least specific. "molecular" and "charge" both lay out 6
// columns and cannot be told apart by count alone; sniffLAMMPSAtomStyle
// resolves that case from the "Atoms # <style>" comment instead, when
// present, and otherwise requests dialogue rather than guess wrong.
var knownLAMMPSAtomStyles = []lammpsAtomStyle{
	{Name: "full", Columns: 7}, // id molecule-id type q x y z
	{Name: "atomic", Columns: 5}, // id type x y z
}

// ambiguousLAMMPSColumnCount is the column count shared by "molecular" (id
// molecule-id type x y z) and "charge" (id type q x y z); style names for
// that count only come from an inline comment.
const ambiguousLAMMPSColumnCount = 6

var lammpsStylesByComment = map[string]string{
	"molecular": "molecular",
	"charge":    "charge",
	"full":      "full",
	"atomic":    "atomic",
}

// LAMMPSPreflightArg is the JSON shape encoded into the preflight argument
// blob for a recognized LAMMPS atom style.
type LAMMPSPreflightArg struct {
	AtomStyle string `json:"atom_style"`
}

// LAMMPSPreflight sniffs the Atoms-section atom-format of a LAMMPS data
// file. If the style is recognized, it encodes it into the
// backend-argument blob; otherwise it requests user dialogue rather than
// guessing.
//
// The sniffed style is not silently absorbed into an opaque blob only the
// backend can read: it is also surfaced on LoaderState.SniffedLAMMPSStyle.
func LAMMPSPreflight(path string) ([]byte, bool, error) {
	style, ok, err := sniffLAMMPSAtomStyle(path)
	if err != nil {
		return nil, false, err
	}

	if !ok {
		return nil, true, nil
	}

	arg, err := json.Marshal(LAMMPSPreflightArg{AtomStyle: style})
	if err != nil {
		return nil, false, err
	}

	return arg, false, nil
}

// sniffLAMMPSAtomStyle scans path for the "Atoms" section header and
// inspects the first data line's column count to guess the atom style.
func sniffLAMMPSAtomStyle(path string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	inAtoms := false
	annotatedStyle := ""

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !inAtoms {
			if line == "Atoms" || strings.HasPrefix(line, "Atoms ") || strings.HasPrefix(line, "Atoms#") {
				inAtoms = true
				annotatedStyle = lammpsStyleFromHeaderComment(line)
			}

			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		// Skip lines that do not start with an atom id, such as a comment
		// line before the first atom record.
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}

		if annotatedStyle != "" {
			return annotatedStyle, true, nil
		}

		if len(fields) == ambiguousLAMMPSColumnCount {
			// "molecular" and "charge" both have 6 columns; without a
			// header annotation this is genuinely ambiguous.
			return "", false, nil
		}

		for _, style := range knownLAMMPSAtomStyles {
			if len(fields) == style.Columns {
				return style.Name, true, nil
			}
		}

		return "", false, nil
	}

	if err := scanner.Err(); err != nil {
		return "", false, err
	}

	return "", false, nil
}

// lammpsStyleFromHeaderComment looks for "<style>" in a trailing "# ..."
// comment on the Atoms section header line, e.g. "Atoms # full".
func lammpsStyleFromHeaderComment(headerLine string) string {
	hashIdx := strings.Index(headerLine, "#")
	if hashIdx < 0 {
		return ""
	}

	comment := strings.ToLower(strings.TrimSpace(headerLine[hashIdx+1:]))

	for _, field := range strings.Fields(comment) {
		if name, ok := lammpsStylesByComment[field]; ok {
			return name
		}
	}

	return ""
}
