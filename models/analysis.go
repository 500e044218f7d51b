package models

// AnalysisResult is produced once per upload and stored as a JSON blob on
// the uploads row. It is never updated after ingestion.
type AnalysisResult struct {
	Duplicates []DuplicateEntry `json:"duplicates"`
	Warnings   []WarningEntry   `json:"warnings"`
	Summary    string           `json:"summary"`
}

// DuplicateEntry marks a (date, name) pair that appears more than once
// within a single upload.
type DuplicateEntry struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Details string `json:"details"`
}

const (
	WarningOvertime      = "overtime"
	WarningMissingData   = "missing_data"
	WarningInconsistency = "inconsistency"
	WarningPattern       = "pattern"
	WarningOther         = "other"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type WarningEntry struct {
	Type           string      `json:"type"`
	Severity       string      `json:"severity"`
	Message        string      `json:"message"`
	RelatedRecords []RecordRef `json:"relatedRecords,omitempty"`
}

// RecordRef points a finding back at the record that triggered it.
type RecordRef struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
