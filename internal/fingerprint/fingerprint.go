package fingerprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the base-10 xxhash64 of s.
func Hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 10)
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeContent converts CRLF and lone CR to LF, trims every line, drops blank lines
// and rejoins the rest with LF.
func NormalizeContent(text string) string {
	return strings.Join(Lines(text), "\n")
}

// Lines returns the trimmed, non-blank lines of text in order.
func Lines(text string) []string {
	raw := strings.Split(lineEndings.Replace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// File returns the fingerprint of a CSV file's content. Two files that differ
// only in line endings, surrounding whitespace or blank lines share a
// fingerprint.
func File(text string) string {
	return Hash(NormalizeContent(text))
}

// Row returns a row fingerprint like "1234_3_5678". rowIndex is the row's
// position among the file's non-blank lines, with the header at 0.
func Row(fileFP string, rowIndex int, rawFields []string) string {
	return fmt.Sprintf("%s_%d_%s", fileFP, rowIndex, Hash(strings.Join(rawFields, "")))
}

// ParseRow splits a row fingerprint into its parts.
func ParseRow(fp string) (fileFP string, rowIndex int, rowHash string, err error) {
	parts := strings.SplitN(fp, "_", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", fmt.Errorf("invalid row fingerprint: %q", fp)
	}

	rowIndex, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid row index in fingerprint %q: %w", fp, err)
	}
	return parts[0], rowIndex, parts[2], nil
}
