// internal/roster/names.go
package roster

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultTitleMapping abbreviates the long child titles the registration site
// collects; adult titles pass through unchanged.
var DefaultTitleMapping = map[string]string{
	"นาย":      "นาย",
	"นาง":      "นาง",
	"นางสาว":   "นางสาว",
	"เด็กชาย":  "ด.ช.",
	"เด็กหญิง": "ด.ญ.",
}

// DefaultSchoolPrefixes are stripped from the front of school names,
// misspellings included.
var DefaultSchoolPrefixes = []string{
	"โรงเรียน", "รร.", "ร.ร.", "ร.ร",
	"โรงเรีย", "โรวเรียน", "เรียน",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// nameFormatter normalizes titles, school names and full names.
type nameFormatter struct {
	titleMapping   map[string]string
	schoolPrefixes []string
}

func newNameFormatter(titleMapping map[string]string, schoolPrefixes []string) *nameFormatter {
	if len(titleMapping) == 0 {
		titleMapping = DefaultTitleMapping
	}
	if len(schoolPrefixes) == 0 {
		schoolPrefixes = DefaultSchoolPrefixes
	}
	return &nameFormatter{titleMapping: titleMapping, schoolPrefixes: schoolPrefixes}
}

// Title maps a raw title to its display form; unknown titles pass through.
func (f *nameFormatter) Title(raw string) string {
	raw = cleanText(raw)
	if mapped, ok := f.titleMapping[raw]; ok {
		return mapped
	}
	return raw
}

// School strips a leading school-word prefix and trims the rest.
func (f *nameFormatter) School(raw string) string {
	s := cleanText(raw)
	for _, prefix := range f.schoolPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	return s
}

// FullName assembles "<title><first> <last>" the way the printed room lists
// show it; the Thai convention has no space between title and given name.
func (f *nameFormatter) FullName(title, first, last string) string {
	full := title + first
	if last != "" {
		full += " " + last
	}
	return strings.TrimSpace(full)
}

// cleanText applies unicode NFC normalization and collapses whitespace, so
// visually identical Thai strings compare equal.
func cleanText(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// cleanID removes the ".0" artefact spreadsheet tools append to numeric
// identity columns.
func cleanID(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, ".0")
}
