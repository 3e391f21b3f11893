package pipeline

import (
	"bytes"
	"regexp"
	"strconv"
)

// Banner is the fixed comment prepended to every generated output file.
const Banner = "// Automatically generated by forge. Do not edit!"

// Version pragmas and source line markers from the tool output are replaced
// by the fixed header, so they must never survive past it.
var (
	versionPragma    = regexp.MustCompile(`^\s*#\s*version\b`)
	sourceLineMarker = regexp.MustCompile(`^\s*#\s*line\b`)
)

// glslHeader returns the two fixed header lines of processed GLSL outputs:
// the version pragma and the banner, in that order.
func glslHeader(version int) []byte {
	return []byte("#version " + strconv.Itoa(version) + "\n" + Banner + "\n")
}

// metalHeader returns the fixed header line of Metal source outputs.
func metalHeader() []byte {
	return []byte(Banner + "\n")
}

// stripDirectives removes every version pragma and source line marker from
// the tool output. Line endings are normalized to LF.
func stripDirectives(out []byte) []byte {
	lines := bytes.Split(bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n")), []byte("\n"))

	kept := make([][]byte, 0, len(lines))
	for _, line := range lines {
		if versionPragma.Match(line) || sourceLineMarker.Match(line) {
			continue
		}
		kept = append(kept, line)
	}

	stripped := bytes.Join(kept, []byte("\n"))
	if len(stripped) > 0 && stripped[len(stripped)-1] != '\n' {
		stripped = append(stripped, '\n')
	}
	return stripped
}
