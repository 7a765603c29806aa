// internal/roster/normalizer.go

// Package roster turns raw spreadsheet rows into validated applicant records.
// Row-level problems are dropped and counted, never raised as errors, so one
// bad row cannot abort a run.
package roster

import (
	"sort"
	"strings"

	"exam-seating/internal/common/config"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/common/metrics"
	"exam-seating/internal/models"
)

// Summary reports what normalization dropped, as a side channel next to the
// records themselves.
type Summary struct {
	RowsRead       int `json:"rowsRead"`
	Kept           int `json:"kept"`
	MissingID      int `json:"missingID"`
	MissingProgram int `json:"missingProgram"`
	DuplicateID    int `json:"duplicateID"`
	// DuplicateIDs lists the identifiers that appeared more than once.
	DuplicateIDs []string `json:"duplicateIDs,omitempty"`
}

// Dropped is the total number of rows that did not become records.
func (s Summary) Dropped() int {
	return s.MissingID + s.MissingProgram + s.DuplicateID
}

// Normalizer cleans, deduplicates and filters raw rows.
type Normalizer struct {
	cfg    config.RosterConfig
	names  *nameFormatter
	logger logger.Logger
}

func NewNormalizer(cfg config.RosterConfig, log logger.Logger) *Normalizer {
	return &Normalizer{
		cfg:    cfg,
		names:  newNameFormatter(cfg.TitleMapping, cfg.SchoolPrefixes),
		logger: log.WithFields(map[string]interface{}{"component": "roster"}),
	}
}

// Normalize converts raw rows into applicant records. Rows missing an id or a
// program are dropped; duplicate ids keep the first occurrence and drop the
// rest. The returned order is input order, which downstream treats as the
// first-seen program order.
func (n *Normalizer) Normalize(rows []models.RawRow) ([]models.ApplicantRecord, Summary) {
	summary := Summary{RowsRead: len(rows)}
	metrics.RosterRowsRead.Add(float64(len(rows)))

	records := make([]models.ApplicantRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	duplicates := make(map[string]struct{})

	for i, row := range rows {
		id := cleanID(row.Get(models.ColThaiID))
		programID := row.Get(models.ColProgramID)

		if id == "" {
			summary.MissingID++
			metrics.RosterRowsDropped.WithLabelValues(metrics.DropReasonMissingID).Inc()
			n.logger.Warn("dropping row without applicant id", map[string]interface{}{"row": i + 1})
			continue
		}
		if programID == "" {
			summary.MissingProgram++
			metrics.RosterRowsDropped.WithLabelValues(metrics.DropReasonMissingProgram).Inc()
			n.logger.Warn("dropping row without program id", map[string]interface{}{
				"row": i + 1, "applicantID": id,
			})
			continue
		}
		if _, dup := seen[id]; dup {
			// First-occurrence-wins: later rows for an id are warnings, not data.
			summary.DuplicateID++
			duplicates[id] = struct{}{}
			metrics.RosterRowsDropped.WithLabelValues(metrics.DropReasonDuplicateID).Inc()
			n.logger.Warn("dropping duplicate applicant id", map[string]interface{}{
				"row": i + 1, "applicantID": id,
			})
			continue
		}
		seen[id] = struct{}{}

		title := n.names.Title(row.Get(models.ColTitle))
		first := cleanText(row.Get(models.ColFirstName))
		last := cleanText(row.Get(models.ColLastName))

		records = append(records, models.ApplicantRecord{
			ID:        id,
			Title:     title,
			FirstName: first,
			LastName:  last,
			FullName:  n.names.FullName(title, first, last),
			School:    n.names.School(row.Get(models.ColSchool)),
			ProgramID: programID,
			Status:    n.mapStatus(row.Get(models.ColStatus)),
		})
	}

	for id := range duplicates {
		summary.DuplicateIDs = append(summary.DuplicateIDs, id)
	}
	sort.Strings(summary.DuplicateIDs)

	summary.Kept = len(records)
	n.logger.Info("roster normalized", map[string]interface{}{
		"rowsRead": summary.RowsRead,
		"kept":     summary.Kept,
		"dropped":  summary.Dropped(),
	})
	return records, summary
}

// mapStatus matches the raw status text case-insensitively against the
// configured label sets; anything unrecognized maps to Unknown.
func (n *Normalizer) mapStatus(raw string) models.Status {
	s := strings.ToLower(cleanText(raw))
	for _, label := range n.cfg.EligibleStatuses {
		if s == strings.ToLower(label) {
			return models.StatusActive
		}
	}
	for _, label := range n.cfg.WithdrawnStatuses {
		if s == strings.ToLower(label) {
			return models.StatusWithdrawn
		}
	}
	for _, label := range n.cfg.IneligibleStatuses {
		if s == strings.ToLower(label) {
			return models.StatusIneligible
		}
	}
	return models.StatusUnknown
}
