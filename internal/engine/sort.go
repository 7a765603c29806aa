// internal/engine/sort.go
package engine

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"exam-seating/internal/common/config"
	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/models"
)

// orderRecords sorts one program's applicants into seat-assignment order.
// byName uses locale-aware collation (Thai collation places names starting
// with leading vowels under their first consonant) with the applicant id as
// tie-break, so the order is total even when names collide.
func orderRecords(records []models.ApplicantRecord, sortKey, locale string) error {
	switch sortKey {
	case config.SortByID:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ID < records[j].ID
		})
		return nil
	case config.SortByName:
		less := nameLess(locale)
		sort.SliceStable(records, func(i, j int) bool {
			return less(records[i], records[j])
		})
		return nil
	default:
		return apperrors.NewInvalidSortKeyError(sortKey)
	}
}

func nameLess(locale string) func(a, b models.ApplicantRecord) bool {
	tag, err := language.Parse(locale)
	if locale == "" || err != nil {
		// Byte order still yields a deterministic total order.
		return func(a, b models.ApplicantRecord) bool {
			if c := strings.Compare(sortName(a), sortName(b)); c != 0 {
				return c < 0
			}
			return a.ID < b.ID
		}
	}

	col := collate.New(tag)
	return func(a, b models.ApplicantRecord) bool {
		if c := col.CompareString(sortName(a), sortName(b)); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}
}

// sortName orders by given name then family name, ignoring the title.
func sortName(r models.ApplicantRecord) string {
	if r.FirstName != "" || r.LastName != "" {
		return r.FirstName + " " + r.LastName
	}
	return r.FullName
}
